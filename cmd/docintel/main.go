// Package main provides the docintel command line tool.
//
// docintel segments PDF documents into sections and ranks them for a persona
// and a job to be done.
//
// Usage:
//
//	docintel analyze --persona "Travel Planner" --job "Plan a 4-day trip" ./guides
//	docintel profiles
//
// See --help for all available options.
package main

func main() {
	Execute()
}
