package main

import "github.com/AJMerr/playcore/cmd"

func main() {
	cmd.Execute()
}
