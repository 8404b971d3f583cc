// Package widget is the GTK4/libadwaita theme picker. It shows a
// layer-shell popup with a search entry and one button per theme, and
// styles itself from the active palette through a CSS provider.
package widget
