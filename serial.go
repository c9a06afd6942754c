// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package engen

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing identifier.
// Tasks and suspension tokens draw from the same sequence, so a serial
// identifies one of them uniquely within a process.
type Serial = uint32

// counter is the global monotonic counter for serials.
var counter atomix.Uint32

// nextSerial returns the next monotonically increasing serial.
func nextSerial() Serial {
	return counter.Add(1)
}
