// Package report renders a completed run's property outcomes as two
// sinks: a human-readable "[name] STATUS" line per property, routed
// through package message's verbosity gate, and an XML document for tool
// integration.
package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/rfielding/ebmc-go/bmc"
	"github.com/rfielding/ebmc-go/message"
)

// WriteText prints one status line per outcome via msg, in the order given,
// followed by the overall run statistics summary line.
func WriteText(msg *message.Message, outcomes []bmc.Outcome, statsSummary string) {
	for _, o := range outcomes {
		msg.Result("[%s] %s (bound %d)", o.Property.Name, o.Property.Status, o.Bound)
	}
	msg.Statistics("%s", statsSummary)
}

// xmlResult is one <result> element of the report document.
type xmlResult struct {
	Property string `xml:"property,attr"`
	Status   string `xml:"status,attr"`
	Bound    int    `xml:"bound,attr"`
}

// xmlDocument is the root <bmc-report> element.
type xmlDocument struct {
	XMLName xml.Name    `xml:"bmc-report"`
	Results []xmlResult `xml:"result"`
}

// WriteXML serializes outcomes as the structured XML report.
func WriteXML(w io.Writer, outcomes []bmc.Outcome) error {
	doc := xmlDocument{}
	for _, o := range outcomes {
		doc.Results = append(doc.Results, xmlResult{
			Property: o.Property.Name,
			Status:   o.Property.Status.String(),
			Bound:    o.Bound,
		})
	}
	fmt.Fprint(w, xml.Header)
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}
