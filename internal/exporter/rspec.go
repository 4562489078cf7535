package exporter

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/hogwarts-cloud/profilectl/internal/models"
)

const (
	RSpecNamespace  = "http://www.geni.net/resources/rspec/3"
	EmulabNamespace = "http://www.protogeni.net/resources/rspec/ext/emulab/1"

	rawPCSliverType      = "raw-pc"
	blockstoreSliverType = "emulab-blockstore"
	localBlockstore      = "local"
	remoteBlockstore     = "remote"
	anyPlacement         = "any"
)

// The emulab extension elements are written with a literal prefix; encoding/xml
// has no way to declare a prefixed namespace on the root element otherwise.
type rspec struct {
	XMLName xml.Name
	Emulab  string      `xml:"xmlns:emulab,attr"`
	Type    string      `xml:"type,attr"`
	Nodes   []rspecNode `xml:"node"`
	Links   []rspecLink `xml:"link"`
}

type rspecNode struct {
	ClientID     string            `xml:"client_id,attr"`
	Exclusive    bool              `xml:"exclusive,attr"`
	SliverType   rspecSliverType   `xml:"sliver_type"`
	HardwareType *rspecName        `xml:"hardware_type,omitempty"`
	Services     *rspecServices    `xml:"services,omitempty"`
	Interfaces   []rspecInterface  `xml:"interface"`
	Blockstores  []rspecBlockstore `xml:"emulab:blockstore"`
}

type rspecSliverType struct {
	Name      string     `xml:"name,attr"`
	DiskImage *rspecName `xml:"disk_image,omitempty"`
}

type rspecName struct {
	Name string `xml:"name,attr"`
}

type rspecServices struct {
	Execute []rspecExecute `xml:"execute"`
}

type rspecExecute struct {
	Shell   string `xml:"shell,attr"`
	Command string `xml:"command,attr"`
}

type rspecInterface struct {
	ClientID string   `xml:"client_id,attr"`
	IP       *rspecIP `xml:"ip,omitempty"`
}

type rspecIP struct {
	Address string `xml:"address,attr"`
	Netmask string `xml:"netmask,attr"`
	Type    string `xml:"type,attr"`
}

type rspecBlockstore struct {
	Name       string `xml:"name,attr"`
	MountPoint string `xml:"mountpoint,attr"`
	Class      string `xml:"class,attr"`
	Size       string `xml:"size,attr,omitempty"`
	Dataset    string `xml:"dataset,attr,omitempty"`
	Placement  string `xml:"placement,attr"`
}

type rspecLink struct {
	ClientID         string              `xml:"client_id,attr"`
	InterfaceRefs    []rspecInterfaceRef `xml:"interface_ref"`
	BestEffort       rspecEnabled        `xml:"emulab:best_effort"`
	VLANTagging      rspecEnabled        `xml:"emulab:vlan_tagging"`
	LinkMultiplexing rspecEnabled        `xml:"emulab:link_multiplexing"`
}

type rspecInterfaceRef struct {
	ClientID string `xml:"client_id,attr"`
}

type rspecEnabled struct {
	Enabled bool `xml:"enabled,attr"`
}

func writeRSpec(w io.Writer, topology models.Topology) error {
	doc := rspec{
		XMLName: xml.Name{Space: RSpecNamespace, Local: "rspec"},
		Emulab:  EmulabNamespace,
		Type:    "request",
	}

	for _, node := range topology.Nodes {
		doc.Nodes = append(doc.Nodes, newRSpecNode(node))
	}

	for _, dataset := range topology.Datasets {
		doc.Nodes = append(doc.Nodes, newRSpecDataset(dataset))
	}

	for _, lan := range topology.Networks {
		link := rspecLink{
			ClientID:         lan.Name,
			BestEffort:       rspecEnabled{Enabled: lan.BestEffort},
			VLANTagging:      rspecEnabled{Enabled: lan.VLANTagging},
			LinkMultiplexing: rspecEnabled{Enabled: lan.LinkMultiplexing},
		}
		for _, member := range lan.Members {
			link.InterfaceRefs = append(link.InterfaceRefs, rspecInterfaceRef{ClientID: member.ClientID()})
		}
		doc.Links = append(doc.Links, link)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write trailer: %w", err)
	}

	return nil
}

func newRSpecNode(node models.Node) rspecNode {
	result := rspecNode{
		ClientID:     node.Name,
		Exclusive:    true,
		SliverType:   rspecSliverType{Name: rawPCSliverType, DiskImage: &rspecName{Name: node.DiskImage}},
		HardwareType: &rspecName{Name: node.HardwareType},
	}

	if len(node.Services) > 0 {
		result.Services = &rspecServices{}
		for _, service := range node.Services {
			result.Services.Execute = append(result.Services.Execute, rspecExecute(service))
		}
	}

	for _, iface := range node.Interfaces {
		result.Interfaces = append(result.Interfaces, newRSpecInterface(node.Name, iface))
	}

	for _, volume := range node.Storage {
		result.Blockstores = append(result.Blockstores, rspecBlockstore{
			Name:       volume.Name,
			MountPoint: volume.MountPoint,
			Class:      localBlockstore,
			Size:       volume.Size,
			Placement:  anyPlacement,
		})
	}

	return result
}

func newRSpecDataset(dataset models.DatasetImport) rspecNode {
	return rspecNode{
		ClientID:   dataset.Name,
		SliverType: rspecSliverType{Name: blockstoreSliverType},
		Interfaces: []rspecInterface{newRSpecInterface(dataset.Name, dataset.Interface)},
		Blockstores: []rspecBlockstore{{
			Name:       dataset.Name,
			MountPoint: dataset.MountPoint,
			Class:      remoteBlockstore,
			Dataset:    dataset.Dataset,
			Placement:  anyPlacement,
		}},
	}
}

func newRSpecInterface(owner string, iface models.Interface) rspecInterface {
	result := rspecInterface{
		ClientID: models.InterfaceRef{Owner: owner, Interface: iface.Name}.ClientID(),
	}

	if iface.IP != "" {
		result.IP = &rspecIP{Address: iface.IP, Netmask: iface.Netmask, Type: "ipv4"}
	}

	return result
}
