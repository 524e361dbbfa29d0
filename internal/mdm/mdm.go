// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

// Package mdm reads administrator-managed split tunnel settings.
package mdm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/janderssonse/splitpick/internal/domain"
	"github.com/janderssonse/splitpick/internal/platform"
	"github.com/janderssonse/splitpick/internal/stringutil"
	"gopkg.in/yaml.v3"
)

// EnvPolicyFile overrides the managed settings file location.
const EnvPolicyFile = "SPLITPICK_MDM_FILE"

// ErrInvalidPolicy is returned when the managed settings file cannot be parsed.
var ErrInvalidPolicy = errors.New("invalid managed settings")

// PackageList accepts either a comma-separated string or a YAML sequence.
type PackageList struct {
	Packages []string
	Set      bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *PackageList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var value string
		if err := node.Decode(&value); err != nil {
			return err
		}

		l.Packages = stringutil.SplitList(value)
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}

		l.Packages = stringutil.SplitList(strings.Join(values, ","))
	default:
		return fmt.Errorf("%w: line %d: expected string or list", ErrInvalidPolicy, node.Line)
	}

	l.Set = true

	return nil
}

// Policy is the managed settings document.
type Policy struct {
	ExcludedPackageNames PackageList `yaml:"ExcludedPackageNames"`
	IncludedPackageNames PackageList `yaml:"IncludedPackageNames"`
}

// ExcludedPackages implements domain.ManagedSettings.
func (p *Policy) ExcludedPackages() domain.SettingState {
	return domain.SettingState{
		Packages: slices.Clone(p.ExcludedPackageNames.Packages),
		Set:      p.ExcludedPackageNames.Set,
	}
}

// IncludedPackages implements domain.ManagedSettings.
func (p *Policy) IncludedPackages() domain.SettingState {
	return domain.SettingState{
		Packages: slices.Clone(p.IncludedPackageNames.Packages),
		Set:      p.IncludedPackageNames.Set,
	}
}

// Active reports whether any managed setting is set.
func (p *Policy) Active() bool {
	return p.ExcludedPackageNames.Set || p.IncludedPackageNames.Set
}

// ResolvePath returns the policy file path: the SPLITPICK_MDM_FILE variable,
// then configured, then the system default.
func ResolvePath(configured string) string {
	if env := os.Getenv(EnvPolicyFile); env != "" {
		return env
	}

	if configured != "" {
		return platform.ExpandPath(configured)
	}

	return platform.DefaultManagedSettingsPath
}

// Parse decodes a managed settings document.
func Parse(data []byte) (*Policy, error) {
	policy := &Policy{}
	if err := yaml.Unmarshal(data, policy); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}

	return policy, nil
}

// Load reads the policy at path. A missing file yields an empty policy.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if errors.Is(err, fs.ErrNotExist) {
		return &Policy{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read managed settings %s: %w", path, err)
	}

	policy, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return policy, nil
}

// EffectivePolicy returns the identifiers that bypass the tunnel, in display
// order. A managed included list wins: every installed app outside it is
// excluded. Otherwise a managed excluded list applies, else the user's set.
func EffectivePolicy(settings domain.ManagedSettings, installed []domain.InstalledApp, user []string) []string {
	if included := settings.IncludedPackages(); included.Set {
		effective := make([]string, 0, len(installed))

		for _, app := range installed {
			if !slices.Contains(included.Packages, app.PackageName) {
				effective = append(effective, app.PackageName)
			}
		}

		return effective
	}

	if excluded := settings.ExcludedPackages(); excluded.Set {
		return domain.IntersectInstalled(excluded.Packages, installed).Strings()
	}

	return domain.IntersectInstalled(user, installed).Strings()
}
