// Package crspline builds continuous paths from cubic Catmull-Rom segments.
/*

A Segment is defined by four control points p0..p3. The visible curve runs
from p1 to p2; p0 and p3 only shape the tangents at the ends:

	tangent(0) = τ·(p2 - p0)
	tangent(1) = τ·(p3 - p1)

where τ is the tension handed to CalculateCoefficients.

A Controller owns an ordered chain of segments. Appending a segment
translates it onto the end of the chain and, on request, rotates it so that
its start tangent continues the end tangent of the chain. The controller keeps
a sampled table of cumulative chord lengths over the global parameter
t ∈ [0,1], which lets clients ask for the point at a given fraction of the
travelled distance instead of a polynomial parameter:

	c := crspline.NewController(1000)
	_ = c.AddSegment(first, 2.0, false)
	_ = c.AddSegment(second, 2.0, true)
	p := c.PointAtDistance(0.5)     // half-way along the chain

The length table is rebuilt by every structural change the controller makes
itself. Clients that mutate segment control points directly have to call
CalculateCoefficients on the segment and CalculateSplineLength on the
controller before querying again; stale tables are not detected.

Controllers are not safe for concurrent use.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package crspline
