// Linkside - Golf Meetup Social Feed Service
// Copyright 2026 Linkside Developers
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/linksideapp/linkside

// Package config loads service configuration with koanf. Sources are
// layered: struct defaults, then an optional YAML file, then environment
// variables. Environment always wins. The merged result is validated
// before the service starts.
package config
