package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// descriptionColumn aligns descriptions and statuses.
	descriptionColumn = 36
)

// TreeNode is a node in a rendered directory tree.
type TreeNode struct {
	Name        string
	Description string
	IsDir       bool
	Children    []*TreeNode
}

// RenderFileTree renders a directory tree rooted at rootName. files maps
// slash-separated relative paths to a description; a description that is a
// status word (created, kept, ...) is colored with StatusStyle. A path
// ending in "/" is rendered as a directory.
func RenderFileTree(rootName string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	root := &TreeNode{Name: rootName, IsDir: true}
	for p, desc := range files {
		insert(root, filepath.ToSlash(p), desc)
	}
	sortTree(root)

	var sb strings.Builder
	styles := GetStyles()
	sb.WriteString(styles.Bold.Render(root.Name + "/"))
	sb.WriteString("\n")
	for i, child := range root.Children {
		renderNode(&sb, child, "", i == len(root.Children)-1)
	}
	return sb.String()
}

func insert(root *TreeNode, p, desc string) {
	isDir := strings.HasSuffix(p, "/")
	parts := strings.Split(strings.Trim(p, "/"), "/")
	current := root
	for i, part := range parts {
		last := i == len(parts)-1

		var child *TreeNode
		for _, c := range current.Children {
			if c.Name == part {
				child = c
				break
			}
		}
		if child == nil {
			child = &TreeNode{Name: part, IsDir: !last || isDir}
			current.Children = append(current.Children, child)
		}
		if last {
			child.Description = desc
		}
		current = child
	}
}

// sortTree orders children directories first, then by name.
func sortTree(node *TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	for _, child := range node.Children {
		sortTree(child)
	}
}

func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isLast bool) {
	connector := treeEdge
	if isLast {
		connector = treeLast
	}

	name := node.Name
	if node.IsDir {
		name += "/"
	}
	line := prefix + connector + name

	if node.Description != "" {
		padding := descriptionColumn - len([]rune(line))
		if padding < 2 {
			padding = 2
		}
		line += strings.Repeat(" ", padding) + describe(node.Description)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	childPrefix := prefix + treeVert
	if isLast {
		childPrefix = prefix + treeSpace
	}
	for i, child := range node.Children {
		renderNode(sb, child, childPrefix, i == len(node.Children)-1)
	}
}

func describe(desc string) string {
	switch desc {
	case StatusCreated, StatusKept, StatusEnabled, StatusDisabled, StatusFailed:
		return StatusStyle(desc).Render(desc)
	default:
		return GetStyles().Muted.Render(desc)
	}
}
