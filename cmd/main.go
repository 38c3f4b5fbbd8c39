// Command circuitsim builds, simulates and exports combinational logic
// circuits described as netlists.
package main

func main() {
	Execute()
}
