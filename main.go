package main

import "github.com/pumpline/pumpline/cmd"

func main() {
	cmd.Execute()
}
