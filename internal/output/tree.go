package output

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

var (
	dirStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	fileStyle = lipgloss.NewStyle()
	rootStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

// node is a directory in the tree being built
type node struct {
	name     string
	children map[string]*node
	isDir    bool
}

// Tree renders slash-separated directory and file paths as a tree under root
func Tree(root string, dirs, files []string) string {
	top := &node{name: root, isDir: true, children: map[string]*node{}}

	insert := func(p string, isDir bool) {
		cur := top
		parts := strings.Split(p, "/")
		for i, part := range parts {
			child, ok := cur.children[part]
			if !ok {
				child = &node{name: part, children: map[string]*node{}, isDir: true}
				cur.children[part] = child
			}
			if i == len(parts)-1 {
				child.isDir = isDir
			}
			cur = child
		}
	}
	for _, d := range dirs {
		insert(d, true)
	}
	for _, f := range files {
		insert(f, false)
	}

	return build(top).Root(rootStyle.Render(root + "/")).String()
}

// build converts n's children to a lipgloss tree, directories first
func build(n *node) *tree.Tree {
	t := tree.New()

	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := n.children[names[i]], n.children[names[j]]
		if a.isDir != b.isDir {
			return a.isDir
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		child := n.children[name]
		if child.isDir {
			t.Child(build(child).Root(dirStyle.Render(name + "/")))
		} else {
			t.Child(fileStyle.Render(name))
		}
	}
	return t
}
