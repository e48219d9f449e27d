/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/yad/cmd/yad/cmd"

func main() {
	cmd.Execute()
}
