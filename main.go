package main

import "github.com/mholecek/location-scout/cmd"

func main() {
	cmd.Execute()
}
