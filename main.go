package main

import "texturetool/cmd"

func main() {
	cmd.Execute()
}
