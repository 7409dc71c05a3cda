package main

import "github.com/llehouerou/cadence/internal/cli"

func main() {
	cli.Execute()
}
