package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hogwarts-cloud/profilectl/internal/models"
	"github.com/samber/lo"
)

const MaxNameLength = 63

var (
	ErrEmptyName             = errors.New("empty name")
	ErrInvalidName           = errors.New("invalid name")
	ErrUnknownImage          = errors.New("unknown disk image")
	ErrUnknownHardwareType   = errors.New("unknown hardware type")
	ErrInvalidUsername       = errors.New("invalid username")
	ErrNegativeNodeCount     = errors.New("negative node count")
	ErrInvalidSize           = errors.New("invalid storage size")
	ErrMalformedDatasetURN   = errors.New("malformed dataset urn")
	ErrDuplicatedDatasetName = errors.New("found duplicated dataset names")
)

var (
	nameRegexp     = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)
	usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9._-]*$`)
)

// ConfigurationError reports a parameter that cannot be turned into a topology.
type ConfigurationError struct {
	Parameter string
	Value     any
	Err       error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("parameter %s (%v): %v", e.Parameter, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func Validate(raw models.RawParams, profile models.Profile) (models.Params, error) {
	if err := validateName(raw.Name); err != nil {
		return models.Params{}, &ConfigurationError{Parameter: "name", Value: raw.Name, Err: err}
	}

	if !lo.ContainsBy(profile.Images, byName(raw.Image)) {
		return models.Params{}, &ConfigurationError{Parameter: "image", Value: raw.Image, Err: ErrUnknownImage}
	}

	if !lo.ContainsBy(profile.HardwareTypes, byName(raw.HardwareType)) {
		return models.Params{}, &ConfigurationError{Parameter: "hardware_type", Value: raw.HardwareType, Err: ErrUnknownHardwareType}
	}

	if !usernameRegexp.MatchString(raw.Username) {
		return models.Params{}, &ConfigurationError{Parameter: "username", Value: raw.Username, Err: ErrInvalidUsername}
	}

	if raw.NumNodes < 0 {
		return models.Params{}, &ConfigurationError{Parameter: "num_nodes", Value: raw.NumNodes, Err: ErrNegativeNodeCount}
	}

	localStorageSize, err := validateSize(raw.LocalStorageSize)
	if err != nil {
		return models.Params{}, &ConfigurationError{Parameter: "local_storage_size", Value: raw.LocalStorageSize, Err: err}
	}

	sharedStorageSize, err := validateSize(raw.NFSStorageSize)
	if err != nil {
		return models.Params{}, &ConfigurationError{Parameter: "nfs_storage_size", Value: raw.NFSStorageSize, Err: err}
	}

	datasets, err := validateDatasets(SplitDatasetURNs(raw.DatasetURNs))
	if err != nil {
		return models.Params{}, &ConfigurationError{Parameter: "dataset_urns", Value: raw.DatasetURNs, Err: err}
	}

	params := models.Params{
		Name:              raw.Name,
		Image:             models.Image(raw.Image),
		HardwareType:      models.HardwareType(raw.HardwareType),
		Username:          raw.Username,
		NodeCount:         raw.NumNodes,
		LocalStorageSize:  localStorageSize,
		SharedStorageSize: sharedStorageSize,
		Datasets:          datasets,
	}

	return params, nil
}

// SplitDatasetURNs splits a whitespace separated list. A blank string yields
// an empty list.
func SplitDatasetURNs(urns string) []models.DatasetURN {
	return lo.Map(strings.Fields(urns), func(urn string, _ int) models.DatasetURN {
		return models.DatasetURN(urn)
	})
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	if len(name) > MaxNameLength || !nameRegexp.MatchString(name) {
		return ErrInvalidName
	}

	return nil
}

func validateSize(literal string) (models.Size, error) {
	size, err := models.ParseSize(literal)
	if err != nil {
		return models.Size{}, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}

	if size.Bytes == 0 {
		return models.Size{}, ErrInvalidSize
	}

	return size, nil
}

func validateDatasets(datasets []models.DatasetURN) ([]models.DatasetURN, error) {
	for _, dataset := range datasets {
		if !strings.Contains(string(dataset), models.DatasetURNSeparator) || !validDatasetName(dataset.Name()) {
			return nil, fmt.Errorf("%w: %s", ErrMalformedDatasetURN, dataset)
		}
	}

	names := lo.Map(datasets, func(dataset models.DatasetURN, _ int) string { return dataset.Name() })
	if duplicates := lo.FindDuplicates(names); len(duplicates) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatedDatasetName, strings.Join(duplicates, ", "))
	}

	return datasets, nil
}

// validDatasetName reports whether name stays a single path element below the
// datasets directory.
func validDatasetName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.Contains(name, "/")
}

func byName(name string) func(models.Choice) bool {
	return func(choice models.Choice) bool {
		return choice.Name == name
	}
}
