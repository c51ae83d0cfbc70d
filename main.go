package main

import "otpctl/cmd"

func main() {
	cmd.Execute()
}
