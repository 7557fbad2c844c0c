package main

import "github.com/aditirto/identity-service/cmd"

func main() {
	cmd.Execute()
}
