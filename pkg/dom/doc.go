// Package dom holds the live node tree helpers shared by the reactive core,
// the router and the component layer.
//
// Nodes are plain *html.Node values from golang.org/x/net/html. The package
// adds what the browser would otherwise provide: attribute selectors (via
// cascadia), deep cloning, text content, and display toggling through the
// style attribute. It also defines the markup contract, the data-* attribute
// names every other package agrees on.
package dom
