package models

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const DatasetURNSeparator = "+"

type RawParams struct {
	Name             string `yaml:"name" mapstructure:"name"`
	Image            string `yaml:"image" mapstructure:"image"`
	HardwareType     string `yaml:"hardware_type" mapstructure:"hardware_type"`
	Username         string `yaml:"username" mapstructure:"username"`
	NumNodes         int    `yaml:"num_nodes" mapstructure:"num_nodes"`
	LocalStorageSize string `yaml:"local_storage_size" mapstructure:"local_storage_size"`
	NFSStorageSize   string `yaml:"nfs_storage_size" mapstructure:"nfs_storage_size"`
	DatasetURNs      string `yaml:"dataset_urns" mapstructure:"dataset_urns"`
	Location         string `yaml:"-" mapstructure:"-"`
}

type Params struct {
	Name              string
	Image             Image
	HardwareType      HardwareType
	Username          string
	NodeCount         int
	LocalStorageSize  Size
	SharedStorageSize Size
	Datasets          []DatasetURN
}

type Image string

type HardwareType string

// Size is a storage size literal such as "200GB". The literal is passed to the
// portal verbatim; Bytes is kept for display only.
type Size struct {
	Literal string
	Bytes   uint64
}

func ParseSize(literal string) (Size, error) {
	bytes, err := humanize.ParseBytes(literal)
	if err != nil {
		return Size{}, fmt.Errorf("failed to parse size: %w", err)
	}

	return Size{Literal: strings.TrimSpace(literal), Bytes: bytes}, nil
}

func (s Size) String() string {
	return s.Literal
}

type DatasetURN string

// Name is the part of the URN after its last separator.
func (d DatasetURN) Name() string {
	urn := string(d)
	return urn[strings.LastIndex(urn, DatasetURNSeparator)+1:]
}
