// Package keys builds the ordered series of rotation matrices that define an
// animation path.
//
// A [Key] is the identity matrix with one planar rotation written into axes
// A and B. A [Series] applies keys[0] first; its [Series.Compose] is the left
// fold keys[N-1]·…·keys[1]·keys[0].
//
// # Angles
//
// [Generate] draws each angle uniformly from [0, 1) radians, not from a full
// turn. Fixtures recorded against earlier builds depend on that range.
package keys
