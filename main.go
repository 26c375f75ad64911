package main

import "github.com/rajeshkanna-s/healthyplates/cmd/healthyplates"

func main() {
	healthyplates.Execute()
}
