package util

import "math"

// Reserved value for "no path exists". Never a valid time or distance.
const UNREACHED int32 = math.MaxInt32
