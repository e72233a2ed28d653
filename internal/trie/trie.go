// Package trie implements a rune-keyed counting trie over passwords.
package trie

// node is a single trie node. endCount tracks how many inserted words end
// exactly here.
type node struct {
	children map[rune]*node
	endCount int
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Trie counts inserted words and their prefixes.
type Trie struct {
	root *node
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: newNode()}
}

// Insert adds one occurrence of word.
func (t *Trie) Insert(word string) {
	n := t.root
	for _, char := range word {
		child, ok := n.children[char]
		if !ok {
			child = newNode()
			n.children[char] = child
		}
		n = child
	}
	n.endCount++
}

// find walks to the node for prefix, or nil if absent.
func (t *Trie) find(prefix string) *node {
	n := t.root
	for _, char := range prefix {
		child, ok := n.children[char]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// CountWordsWithPrefix counts inserted words sharing the given prefix,
// including exact matches.
func (t *Trie) CountWordsWithPrefix(prefix string) int {
	n := t.find(prefix)
	if n == nil {
		return 0
	}
	return subtreeCount(n)
}

// StandaloneCount counts inserted words equal to prefix exactly.
func (t *Trie) StandaloneCount(prefix string) int {
	n := t.find(prefix)
	if n == nil {
		return 0
	}
	return n.endCount
}

// FollowingChars counts, per immediate next rune, how many inserted words
// continue past the given prefix with that rune.
func (t *Trie) FollowingChars(prefix string) map[rune]int {
	counts := make(map[rune]int)
	n := t.find(prefix)
	if n == nil {
		return counts
	}
	for char, child := range n.children {
		counts[char] = subtreeCount(child)
	}
	return counts
}

// HighStandalone returns every prefix whose exact-match count exceeds the
// threshold.
func (t *Trie) HighStandalone(threshold int) []string {
	var prefixes []string
	collectHighStandalone(t.root, "", threshold, &prefixes)
	return prefixes
}

func collectHighStandalone(n *node, prefix string, threshold int, results *[]string) {
	if n.endCount > threshold {
		*results = append(*results, prefix)
	}
	for char, child := range n.children {
		collectHighStandalone(child, prefix+string(char), threshold, results)
	}
}

func subtreeCount(n *node) int {
	count := n.endCount
	for _, child := range n.children {
		count += subtreeCount(child)
	}
	return count
}
