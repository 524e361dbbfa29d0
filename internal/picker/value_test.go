// SPDX-FileCopyrightText: 2025 The Splitpick Authors
// SPDX-License-Identifier: EUPL-1.2

package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_SubscribeAndUnsubscribe(t *testing.T) {
	t.Parallel()

	value := NewValue("initial")
	assert.Equal(t, "initial", value.Get())

	var seen []string
	unsubscribe := value.Subscribe(func(v string) { seen = append(seen, v) })

	value.Set("first")
	value.Set("second")
	unsubscribe()
	unsubscribe()
	value.Set("third")

	assert.Equal(t, []string{"first", "second"}, seen)
	assert.Equal(t, "third", value.Get())
}

func TestValue_SubscriberMayReadValue(t *testing.T) {
	t.Parallel()

	value := NewValue(0)

	var observed int
	value.Subscribe(func(int) { observed = value.Get() })

	value.Set(42)
	assert.Equal(t, 42, observed)
}
