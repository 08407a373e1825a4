package main

import "marketsync/cmd"

func main() {
	cmd.Execute()
}
