// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// AppBuildInfo carries build-time metadata injected with -ldflags and shown
// by `edge` on startup and by `edgectl version`.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]. Empty values are reported as "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(buildVersion),
		buildDate:    orNA(buildDate),
		buildCommit:  orNA(buildCommit),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// BuildVersion returns the semantic version string of the build.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// BuildDate returns the build timestamp string.
func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

// BuildCommit returns the source-control commit hash used for the build.
func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

type appBuildInfoJSON struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

func (a AppBuildInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(appBuildInfoJSON{Version: a.buildVersion, Date: a.buildDate, Commit: a.buildCommit})
}

func (a *AppBuildInfo) UnmarshalJSON(data []byte) error {
	var raw appBuildInfoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = NewAppBuildInfo(raw.Version, raw.Date, raw.Commit)
	return nil
}
