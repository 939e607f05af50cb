// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import "time"

// SetClock pins the service clock for tests.
func (service *Service) SetClock(now func() time.Time) {
	service.now = now
}
