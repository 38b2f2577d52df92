package main

import "statline/cmd/statline/root"

func main() {
	root.Execute()
}
