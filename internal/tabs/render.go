package tabs

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/contentkit/internal/doctree"
)

// Class names the site stylesheet and tab script rely on.
const (
	ClassTabs      = "tabs"
	ClassTabsSmall = "tabs-small"
	ClassTabList   = "tabs__tab-list"
	ClassTab       = "tabs__tab"
	ClassPanel     = "tabs__tab-panel"
)

// Render builds the markup for a tab group:
//
//	<div class="tabs">
//	  <ul role="tablist"><li role="tab">Name</li>...</ul>
//	  <div role="tabpanel">contents</div>...
//	</div>
//
// The first tab starts selected. The group's content nodes are moved into
// the panels.
func Render(group TabGroup) *html.Node {
	class := ClassTabs
	if group.IsSmall {
		class += " " + ClassTabsSmall
	}

	list := doctree.Element("ul", []html.Attribute{
		{Key: "class", Val: ClassTabList},
		{Key: "role", Val: "tablist"},
	})
	root := doctree.Element("div", []html.Attribute{{Key: "class", Val: class}}, list)

	for i, tab := range group.Tabs {
		selected := i == 0
		tabID, panelID := tab.TabID, tab.PanelID
		if tabID == "" {
			tabID = "tab-" + tab.Slug
		}
		if panelID == "" {
			panelID = "panel-" + tab.Slug
		}

		attrs := []html.Attribute{
			{Key: "class", Val: ClassTab},
			{Key: "role", Val: "tab"},
			{Key: "id", Val: tabID},
			{Key: tabNameAttr, Val: tab.Slug},
			{Key: "aria-controls", Val: panelID},
			{Key: "aria-selected", Val: boolAttr(selected)},
			{Key: "tabindex", Val: tabIndex(selected)},
		}
		if len(tab.Headers) > 0 {
			attrs = append(attrs, html.Attribute{Key: "data-headers", Val: strings.Join(tab.Headers, " ")})
		}
		list.AppendChild(doctree.Element("li", attrs, doctree.Text(tab.Name)))

		panelAttrs := []html.Attribute{
			{Key: "class", Val: ClassPanel},
			{Key: "role", Val: "tabpanel"},
			{Key: "id", Val: panelID},
			{Key: tabNameAttr, Val: tab.Slug},
			{Key: "aria-labelledby", Val: tabID},
			{Key: "tabindex", Val: "0"},
		}
		if !selected {
			panelAttrs = append(panelAttrs, html.Attribute{Key: "hidden", Val: ""})
		}
		root.AppendChild(doctree.Element("div", panelAttrs, tab.Contents...))
	}
	return root
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func tabIndex(selected bool) string {
	if selected {
		return "0"
	}
	return "-1"
}
