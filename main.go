package main

import "laundry-service/cmd"

func main() {
	cmd.Execute()
}
