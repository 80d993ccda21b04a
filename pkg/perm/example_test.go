package perm_test

import (
	"fmt"

	"github.com/matzehuels/fareplan/pkg/perm"
)

func ExampleLex() {
	// Enumerate all orderings of 3 elements
	perms := perm.Lex(3)
	fmt.Println("All orderings of [0,1,2]:")
	for _, p := range perms {
		fmt.Println(p)
	}
	// Output:
	// All orderings of [0,1,2]:
	// [0 1 2]
	// [0 2 1]
	// [1 0 2]
	// [1 2 0]
	// [2 0 1]
	// [2 1 0]
}

func ExampleNext() {
	p := []int{0, 1, 2}
	perm.Next(p)
	fmt.Println(p)
	// Output:
	// [0 2 1]
}

func ExampleFactorial() {
	fmt.Println("4! =", perm.Factorial(4))
	fmt.Println("5! =", perm.Factorial(5))
	// Output:
	// 4! = 24
	// 5! = 120
}
