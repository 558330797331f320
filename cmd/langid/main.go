package main

import "github.com/MeKo-Tech/langid/cmd/langid/cmd"

func main() {
	cmd.Execute()
}
