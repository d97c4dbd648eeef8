// Package snapshot reads roast input snapshots from YAML files.
//
// A snapshot file maps stage keys to the raw text for that stage:
//
//	turning_point: {temperature: "92", time: "01:05"}
//	yellowing:     {temperature: "150", time: "04:30"}
//	first_crack:   {temperature: "196", time: "08:10"}
//	drop:          {temperature: "208", time: "10:00"}
//
// Short stage names (TP, Yellow, FC, Drop) are accepted as keys. Values are
// kept as raw text so the calculation reports malformed entries itself.
//
// Watch(ctx, path, onChange) uses fsnotify on the containing directory and
// reloads whenever the file is written, created or renamed into place.
package snapshot
