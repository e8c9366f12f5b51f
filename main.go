package main

import (
	"httpmsg/internal/cmd"
)

func main() {
	cmd.Execute()
}
