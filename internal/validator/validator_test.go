package validator

import (
	"net"
	"testing"

	"github.com/hogwarts-cloud/profilectl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() models.Profile {
	return models.Profile{
		Images: []models.Choice{
			{Name: "UBUNTU14-64-STD", Description: "Ubuntu 14.04"},
			{Name: "UBUNTU16-64-STD", Description: "Ubuntu 16.04"},
		},
		HardwareTypes: []models.Choice{
			{Name: "m510", Description: "m510 (CloudLab Utah, 8-Core Intel Xeon D-1548)"},
			{Name: "d430", Description: "d430 (Emulab, 8-Core Intel Xeon E5-2630v3)"},
		},
		ClusterLAN: models.LAN{Name: "clan"},
		DatasetLAN: models.LAN{Name: "dslan"},
	}
}

func validParams() models.RawParams {
	return models.RawParams{
		Name:             "cluster",
		Image:            "UBUNTU16-64-STD",
		HardwareType:     "m510",
		Username:         "alice",
		NumNodes:         3,
		LocalStorageSize: "200GB",
		NFSStorageSize:   "500GB",
		DatasetURNs:      "urn:publicid:IDN+emulab.net:proj+ltdataset+ds1",
	}
}

func Test_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(raw *models.RawParams)
		wantErr   bool
		err       error
		parameter string
	}{
		{
			name:   "happy path",
			modify: func(raw *models.RawParams) {},
		},
		{
			name:   "zero nodes",
			modify: func(raw *models.RawParams) { raw.NumNodes = 0 },
		},
		{
			name:   "empty username",
			modify: func(raw *models.RawParams) { raw.Username = "" },
		},
		{
			name:   "no datasets",
			modify: func(raw *models.RawParams) { raw.DatasetURNs = "" },
		},
		{
			name:      "empty name",
			modify:    func(raw *models.RawParams) { raw.Name = "" },
			wantErr:   true,
			err:       ErrEmptyName,
			parameter: "name",
		},
		{
			name:      "invalid name",
			modify:    func(raw *models.RawParams) { raw.Name = "aba caba" },
			wantErr:   true,
			err:       ErrInvalidName,
			parameter: "name",
		},
		{
			name:      "unknown image",
			modify:    func(raw *models.RawParams) { raw.Image = "CENTOS7-64-STD" },
			wantErr:   true,
			err:       ErrUnknownImage,
			parameter: "image",
		},
		{
			name:      "unknown hardware type",
			modify:    func(raw *models.RawParams) { raw.HardwareType = "c6420" },
			wantErr:   true,
			err:       ErrUnknownHardwareType,
			parameter: "hardware_type",
		},
		{
			name:      "username with shell metacharacters",
			modify:    func(raw *models.RawParams) { raw.Username = "alice; rm -rf /" },
			wantErr:   true,
			err:       ErrInvalidUsername,
			parameter: "username",
		},
		{
			name:      "negative node count",
			modify:    func(raw *models.RawParams) { raw.NumNodes = -1 },
			wantErr:   true,
			err:       ErrNegativeNodeCount,
			parameter: "num_nodes",
		},
		{
			name:      "invalid local storage size",
			modify:    func(raw *models.RawParams) { raw.LocalStorageSize = "lots" },
			wantErr:   true,
			err:       ErrInvalidSize,
			parameter: "local_storage_size",
		},
		{
			name:      "zero nfs storage size",
			modify:    func(raw *models.RawParams) { raw.NFSStorageSize = "0GB" },
			wantErr:   true,
			err:       ErrInvalidSize,
			parameter: "nfs_storage_size",
		},
		{
			name:      "dataset urn without separator",
			modify:    func(raw *models.RawParams) { raw.DatasetURNs = "ds1" },
			wantErr:   true,
			err:       ErrMalformedDatasetURN,
			parameter: "dataset_urns",
		},
		{
			name:      "dataset urn with trailing separator",
			modify:    func(raw *models.RawParams) { raw.DatasetURNs = "urn:publicid:IDN+emulab.net+" },
			wantErr:   true,
			err:       ErrMalformedDatasetURN,
			parameter: "dataset_urns",
		},
		{
			name:      "dataset name is parent directory",
			modify:    func(raw *models.RawParams) { raw.DatasetURNs = "urn+.." },
			wantErr:   true,
			err:       ErrMalformedDatasetURN,
			parameter: "dataset_urns",
		},
		{
			name:      "dataset name is current directory",
			modify:    func(raw *models.RawParams) { raw.DatasetURNs = "urn+." },
			wantErr:   true,
			err:       ErrMalformedDatasetURN,
			parameter: "dataset_urns",
		},
		{
			name:      "dataset name with slash",
			modify:    func(raw *models.RawParams) { raw.DatasetURNs = "urn:+dsA urn+../../etc/x" },
			wantErr:   true,
			err:       ErrMalformedDatasetURN,
			parameter: "dataset_urns",
		},
		{
			name: "duplicated dataset names",
			modify: func(raw *models.RawParams) {
				raw.DatasetURNs = "urn:publicid:IDN+a.net+ds1 urn:publicid:IDN+b.net+ds1"
			},
			wantErr:   true,
			err:       ErrDuplicatedDatasetName,
			parameter: "dataset_urns",
		},
	}

	profile := testProfile()

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validParams()
			tc.modify(&raw)

			_, err := Validate(raw, profile)
			if tc.wantErr {
				assert.ErrorIs(t, err, tc.err)

				var configErr *ConfigurationError
				require.ErrorAs(t, err, &configErr)
				assert.Equal(t, tc.parameter, configErr.Parameter)
				assert.Contains(t, err.Error(), tc.parameter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Validate_TypedParams(t *testing.T) {
	params, err := Validate(validParams(), testProfile())
	require.NoError(t, err)

	assert.Equal(t, "cluster", params.Name)
	assert.Equal(t, models.Image("UBUNTU16-64-STD"), params.Image)
	assert.Equal(t, models.HardwareType("m510"), params.HardwareType)
	assert.Equal(t, 3, params.NodeCount)
	assert.Equal(t, "200GB", params.LocalStorageSize.String())
	assert.Equal(t, uint64(200_000_000_000), params.LocalStorageSize.Bytes)
	assert.Equal(t, "500GB", params.SharedStorageSize.String())
	assert.Equal(t, []models.DatasetURN{"urn:publicid:IDN+emulab.net:proj+ltdataset+ds1"}, params.Datasets)
}

func Test_SplitDatasetURNs(t *testing.T) {
	testCases := []struct {
		name     string
		urns     string
		expected []models.DatasetURN
	}{
		{
			name:     "empty string",
			urns:     "",
			expected: []models.DatasetURN{},
		},
		{
			name:     "blank string",
			urns:     "  \t ",
			expected: []models.DatasetURN{},
		},
		{
			name:     "single",
			urns:     "urn:+dsA",
			expected: []models.DatasetURN{"urn:+dsA"},
		},
		{
			name:     "order preserved across runs of whitespace",
			urns:     "urn:+dsA   urn:+dsB\nurn:+dsC",
			expected: []models.DatasetURN{"urn:+dsA", "urn:+dsB", "urn:+dsC"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SplitDatasetURNs(tc.urns))
		})
	}
}

func Test_ValidateProfile(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(profile *models.Profile)
		wantErr   bool
		err       error
		parameter string
	}{
		{
			name:   "happy path",
			modify: func(profile *models.Profile) {},
		},
		{
			name: "ipv4 cidr",
			modify: func(profile *models.Profile) {
				_, cidr, _ := net.ParseCIDR("10.10.1.0/24")
				profile.ClusterLAN.CIDR = cidr
			},
		},
		{
			name:      "no images",
			modify:    func(profile *models.Profile) { profile.Images = nil },
			wantErr:   true,
			err:       ErrEmptyCatalog,
			parameter: "images",
		},
		{
			name:      "no hardware types",
			modify:    func(profile *models.Profile) { profile.HardwareTypes = []models.Choice{} },
			wantErr:   true,
			err:       ErrEmptyCatalog,
			parameter: "hardware_types",
		},
		{
			name:      "empty cluster lan name",
			modify:    func(profile *models.Profile) { profile.ClusterLAN.Name = "" },
			wantErr:   true,
			err:       ErrEmptyLANName,
			parameter: "cluster_lan.name",
		},
		{
			name:      "empty dataset lan name",
			modify:    func(profile *models.Profile) { profile.DatasetLAN.Name = "" },
			wantErr:   true,
			err:       ErrEmptyLANName,
			parameter: "dataset_lan.name",
		},
		{
			name:      "same lan names",
			modify:    func(profile *models.Profile) { profile.DatasetLAN.Name = "clan" },
			wantErr:   true,
			err:       ErrDuplicatedLANName,
			parameter: "dataset_lan.name",
		},
		{
			name: "ipv6 cidr",
			modify: func(profile *models.Profile) {
				_, cidr, _ := net.ParseCIDR("fd00::/64")
				profile.DatasetLAN.CIDR = cidr
			},
			wantErr:   true,
			err:       ErrUnsupportedCIDR,
			parameter: "dataset_lan.cidr",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile := testProfile()
			tc.modify(&profile)

			err := ValidateProfile(profile)
			if tc.wantErr {
				assert.ErrorIs(t, err, tc.err)

				var configErr *ConfigurationError
				require.ErrorAs(t, err, &configErr)
				assert.Equal(t, tc.parameter, configErr.Parameter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
