package topic_test

import (
	"fmt"

	"github.com/dshills/topicbus/internal/event/topic"
)

func ExampleTree_Traverse() {
	tree, err := topic.NewTree(".")
	if err != nil {
		panic(err)
	}

	for _, pattern := range []string{"*.orange.*", "*.*.rabbit", "lazy.#"} {
		if err := tree.Add(pattern); err != nil {
			panic(err)
		}
	}

	_ = tree.Traverse("lazy.orange.rabbit", func(pattern string) {
		fmt.Println(pattern)
	})

	// Output:
	// *.orange.*
	// *.*.rabbit
	// lazy.#
}

func ExampleTree_Remove() {
	tree, _ := topic.NewTree(".")
	_ = tree.Add("a.#")
	_ = tree.Add("a.#")

	_ = tree.Remove("a.#")
	fmt.Println(tree.Count("a.#"))

	_ = tree.Remove("a.#")
	err := tree.Remove("a.#")
	fmt.Println(err)

	// Output:
	// 1
	// couldn't find topic "a.#"
}
