package main

import "github.com/railwayapp/envman/cmd/envman"

func main() {
	envman.Execute()
}
