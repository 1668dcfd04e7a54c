package main

import "focusden/cmd/den/root"

func main() {
	root.Execute()
}
