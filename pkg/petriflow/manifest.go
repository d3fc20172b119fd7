// SPDX-License-Identifier: MPL-2.0

package petriflow

import (
	"fmt"
	"strings"
)

// manifestSchemaLocation is the fixed schema reference emitted in every
// manifest. It is part of the on-disk contract and not configurable.
const manifestSchemaLocation = "https://github.com/netgrif/petriflow/blob/PF-78/petriflow.schema.xsd"

// manifestTemplate is the fixed manifest layout. Placeholders, in order:
// title, app_id, name, description, version, author, allowedNets block.
const manifestTemplate = `<cases xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
       xsi:noNamespaceSchemaLocation="` + manifestSchemaLocation + `">
    <case>
        <title>%s</title>
        <dataField type="text">
            <id>app_id</id>
            <value>%s</value>
            <version>1</version>
        </dataField>
        <dataField type="text">
            <id>name</id>
            <value>%s</value>
            <version>1</version>
        </dataField>
        <dataField type="text">
            <id>description</id>
            <value>%s</value>
            <version>1</version>
        </dataField>
        <dataField type="text">
            <id>version</id>
            <value>%s</value>
            <version>1</version>
        </dataField>
        <dataField type="text">
            <id>author</id>
            <value>%s</value>
            <version>1</version>
        </dataField>
        <dataField type="caseRef">
            <id>processes</id>
            <allowedNets>
%s
            </allowedNets>
            <version>1</version>
        </dataField>
    </case>
</cases>
`

// xmlEscaper escapes the five XML special characters. A single replacer pass
// is equivalent to sequential replacement with ampersand first, so already
// escaped output is never re-escaped.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes &, <, >, " and ' for embedding in manifest text.
func EscapeXML(input string) string {
	return xmlEscaper.Replace(input)
}

// GenerateManifest renders the manifest document for the given ordered list
// of included process names and resolved metadata. Identical inputs always
// produce byte-identical output; the <allowedNets> order equals the input
// order.
func GenerateManifest(processNames []string, meta Metadata) string {
	values := make([]string, 0, len(processNames))
	for _, name := range processNames {
		values = append(values, "                <value>"+EscapeXML(name)+"</value>")
	}

	return fmt.Sprintf(manifestTemplate,
		EscapeXML(meta.Name),
		EscapeXML(meta.ID),
		EscapeXML(meta.Name),
		EscapeXML(meta.Description),
		EscapeXML(meta.Version),
		EscapeXML(meta.Author),
		strings.Join(values, "\n"),
	)
}
