// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/gogpu/vrshell/compositor"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
