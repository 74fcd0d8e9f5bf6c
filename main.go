package main

import (
	"github.com/nimec77/hello-world-grpc/cmd"
)

func main() {
	cmd.Execute()
}
