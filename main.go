package main

import "github.com/Alijeyrad/interiora_backend/cmd"

func main() {
	cmd.Execute()
}
