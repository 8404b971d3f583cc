// Package panel is the theme picker core shared by the terminal and
// desktop front ends. A Panel holds the catalog, the active config and
// the search term; a Session drives a Panel from a host on a single
// event loop.
package panel
