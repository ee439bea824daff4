package web

import (
	"strings"

	"golang.org/x/net/html"
)

// attr returns the value of the named attribute, or empty string.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether the node's class attribute contains name
// as a whole token.
func hasClass(n *html.Node, name string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == name {
			return true
		}
	}
	return false
}

// isElement reports whether n is an element with the given tag.
func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

// walk visits n and all descendants in document order.
// Returning false from fn skips the node's subtree.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// findFirst returns the first node (document order) matching fn.
func findFirst(n *html.Node, fn func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(node *html.Node) bool {
		if found != nil {
			return false
		}
		if fn(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

// detachMatching removes every node matching fn from the tree.
// Matched subtrees are not descended into.
func detachMatching(n *html.Node, fn func(*html.Node) bool) {
	var doomed []*html.Node
	walk(n, func(node *html.Node) bool {
		if node != n && fn(node) {
			doomed = append(doomed, node)
			return false
		}
		return true
	})
	for _, node := range doomed {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
	}
}

// textContent concatenates all text nodes under n, space-separated.
func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(node *html.Node) bool {
		if node.Type == html.TextNode {
			trimmed := strings.TrimSpace(node.Data)
			if trimmed != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(trimmed)
			}
		}
		return true
	})
	return b.String()
}

// collapseWhitespace folds all runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
