// Package nodelink renders a maze's carved connections as a graph diagram.
//
// Each cell becomes a node pinned at its grid position and each carved passage
// an undirected edge, so the picture shows the spanning tree underneath the
// maze rather than its walls.
//
//	dot := nodelink.ToDOT(m, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Rendering uses Graphviz's neato engine through goccy/go-graphviz, which
// runs in-process.
package nodelink
