package main

import "github.com/surge-downloader/magnet/cmd"

func main() {
	cmd.Execute()
}
