package crs

import (
	"fmt"
	"math"
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi

	// utmScaleFactor and the false offsets are fixed by the UTM definition.
	utmScaleFactor   = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0

	// phiIterations bounds the fixed-point iterations used by the inverse
	// formulas; they converge to float64 precision well before this.
	phiIterations = 15
)

// projection converts geographic coordinates in radians to projected meters
// and back. Out-of-domain inputs produce NaN rather than errors so raster
// resampling can treat them as nodata.
type projection interface {
	forward(lon, lat float64) (x, y float64)
	inverse(x, y float64) (lon, lat float64)
}

// buildProjection constructs the projection for a parameter set.
func buildProjection(params Params) (projection, error) {
	ell, err := resolveEllipsoid(params)
	if err != nil {
		return nil, err
	}

	switch params.Proj {
	case "webmerc":
		return &webMercator{r: ell.a, x0: params.X0, y0: params.Y0}, nil
	case "merc":
		return newMercator(ell, params), nil
	case "tmerc":
		k0 := params.K0
		if k0 == 0 {
			k0 = 1
		}

		return newTransverseMercator(ell,
			params.Lat0*degToRad, params.Lon0*degToRad, k0, params.X0, params.Y0), nil
	case "utm":
		if params.Zone < 1 || params.Zone > 60 {
			return nil, fmt.Errorf("%w: utm requires +zone between 1 and 60", ErrUnsupportedProjection)
		}

		lon0 := float64(params.Zone*6-183) * degToRad

		falseNorthing := 0.0
		if params.South {
			falseNorthing = utmFalseNorthing
		}

		return newTransverseMercator(ell, 0, lon0, utmScaleFactor, utmFalseEasting, falseNorthing), nil
	case "aea":
		lat1, lat2 := params.Lat1, params.Lat2
		if lat1 == 0 && lat2 == 0 {
			// proj's historical defaults for aea.
			lat1, lat2 = 29.5, 45.5
		}

		return newAlbers(ell,
			lat1*degToRad, lat2*degToRad,
			params.Lat0*degToRad, params.Lon0*degToRad,
			params.X0, params.Y0), nil
	case "lcc":
		lat1, lat2 := params.Lat1, params.Lat2
		if lat1 == 0 && lat2 == 0 {
			return nil, fmt.Errorf("%w: lcc requires +lat_1", ErrUnsupportedProjection)
		}

		if lat2 == 0 {
			lat2 = lat1
		}

		return newLambertConformal(ell,
			lat1*degToRad, lat2*degToRad,
			params.Lat0*degToRad, params.Lon0*degToRad,
			params.X0, params.Y0), nil
	}

	return nil, fmt.Errorf("%w: %q (supported: longlat, webmerc, merc, tmerc, utm, aea, lcc)",
		ErrUnsupportedProjection, params.Proj)
}

// adjustLon normalizes a longitude difference into (-pi, pi].
func adjustLon(lon float64) float64 {
	for lon > math.Pi {
		lon -= 2 * math.Pi
	}

	for lon < -math.Pi {
		lon += 2 * math.Pi
	}

	return lon
}

// Web Mercator (spherical, the EPSG:3857 convention).

type webMercator struct {
	r, x0, y0 float64
}

func (p *webMercator) forward(lon, lat float64) (float64, float64) {
	x := p.x0 + p.r*lon
	y := p.y0 + p.r*math.Log(math.Tan(math.Pi/4+lat/2))

	return x, y
}

func (p *webMercator) inverse(x, y float64) (float64, float64) {
	lon := (x - p.x0) / p.r
	lat := 2*math.Atan(math.Exp((y-p.y0)/p.r)) - math.Pi/2

	return lon, lat
}

// Ellipsoidal Mercator.

type mercator struct {
	lon0   float64
	x0, y0 float64
	scaled float64 // a * k0
	ecc    float64
}

func newMercator(ell ellipsoid, params Params) *mercator {
	k0 := params.K0
	if k0 == 0 {
		k0 = 1
	}

	// A true-scale latitude overrides the scale factor.
	if params.LatTS != 0 {
		latTS := params.LatTS * degToRad
		sinTS := math.Sin(latTS)
		k0 = math.Cos(latTS) / math.Sqrt(1-ell.e2*sinTS*sinTS)
	}

	return &mercator{
		lon0:   params.Lon0 * degToRad,
		x0:     params.X0,
		y0:     params.Y0,
		scaled: ell.a * k0,
		ecc:    ell.e,
	}
}

func (p *mercator) forward(lon, lat float64) (float64, float64) {
	sinLat := math.Sin(lat)
	conformal := math.Tan(math.Pi/4+lat/2) *
		math.Pow((1-p.ecc*sinLat)/(1+p.ecc*sinLat), p.ecc/2)

	x := p.x0 + p.scaled*adjustLon(lon-p.lon0)
	y := p.y0 + p.scaled*math.Log(conformal)

	return x, y
}

func (p *mercator) inverse(x, y float64) (float64, float64) {
	t := math.Exp(-(y - p.y0) / p.scaled)

	lat := math.Pi/2 - 2*math.Atan(t)
	for range phiIterations {
		sinLat := math.Sin(lat)
		lat = math.Pi/2 - 2*math.Atan(t*math.Pow((1-p.ecc*sinLat)/(1+p.ecc*sinLat), p.ecc/2))
	}

	lon := p.lon0 + (x-p.x0)/p.scaled

	return lon, lat
}

// Transverse Mercator (ellipsoidal series form).

type transverseMercator struct {
	ell    ellipsoid
	lat0   float64
	lon0   float64
	k0     float64
	x0, y0 float64
	ep2    float64 // second eccentricity squared
	m0     float64 // meridional arc at lat0
	e1     float64 // rectifying latitude coefficient
	mCoeff float64 // a * (1 - e2/4 - 3e4/64 - 5e6/256)
}

func newTransverseMercator(ell ellipsoid, lat0, lon0, k0, x0, y0 float64) *transverseMercator {
	e2 := ell.e2

	proj := &transverseMercator{
		ell:    ell,
		lat0:   lat0,
		lon0:   lon0,
		k0:     k0,
		x0:     x0,
		y0:     y0,
		ep2:    e2 / (1 - e2),
		e1:     (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2)),
		mCoeff: ell.a * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256),
	}
	proj.m0 = proj.meridionalArc(lat0)

	return proj
}

// meridionalArc returns the distance along the meridian from the equator.
func (p *transverseMercator) meridionalArc(lat float64) float64 {
	e2 := p.ell.e2
	e4 := e2 * e2
	e6 := e4 * e2

	return p.ell.a * ((1-e2/4-3*e4/64-5*e6/256)*lat -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*lat) +
		(15*e4/256+45*e6/1024)*math.Sin(4*lat) -
		(35*e6/3072)*math.Sin(6*lat))
}

func (p *transverseMercator) forward(lon, lat float64) (float64, float64) {
	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	tanLat := math.Tan(lat)

	n := p.ell.a / math.Sqrt(1-p.ell.e2*sinLat*sinLat)
	t := tanLat * tanLat
	c := p.ep2 * cosLat * cosLat
	aTerm := cosLat * adjustLon(lon-p.lon0)
	m := p.meridionalArc(lat)

	a2 := aTerm * aTerm
	a3 := a2 * aTerm
	a4 := a2 * a2
	a5 := a4 * aTerm
	a6 := a4 * a2

	x := p.x0 + p.k0*n*(aTerm+(1-t+c)*a3/6+
		(5-18*t+t*t+72*c-58*p.ep2)*a5/120)
	y := p.y0 + p.k0*(m-p.m0+n*tanLat*(a2/2+
		(5-t+9*c+4*c*c)*a4/24+
		(61-58*t+t*t+600*c-330*p.ep2)*a6/720))

	return x, y
}

func (p *transverseMercator) inverse(x, y float64) (float64, float64) {
	m := p.m0 + (y-p.y0)/p.k0
	mu := m / p.mCoeff

	e1 := p.e1
	lat1 := mu + (3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu) +
		(1097*e1*e1*e1*e1/512)*math.Sin(8*mu)

	sinLat1 := math.Sin(lat1)
	cosLat1 := math.Cos(lat1)
	tanLat1 := math.Tan(lat1)

	c1 := p.ep2 * cosLat1 * cosLat1
	t1 := tanLat1 * tanLat1
	oneMinus := 1 - p.ell.e2*sinLat1*sinLat1
	n1 := p.ell.a / math.Sqrt(oneMinus)
	r1 := p.ell.a * (1 - p.ell.e2) / math.Pow(oneMinus, 1.5)
	d := (x - p.x0) / (n1 * p.k0)

	d2 := d * d
	d3 := d2 * d
	d4 := d2 * d2
	d5 := d4 * d
	d6 := d4 * d2

	lat := lat1 - (n1*tanLat1/r1)*(d2/2-
		(5+3*t1+10*c1-4*c1*c1-9*p.ep2)*d4/24+
		(61+90*t1+298*c1+45*t1*t1-252*p.ep2-3*c1*c1)*d6/720)
	lon := p.lon0 + (d-(1+2*t1+c1)*d3/6+
		(5-2*c1+28*t1-3*c1*c1+8*p.ep2+24*t1*t1)*d5/120)/cosLat1

	return lon, lat
}

// Albers equal area conic (ellipsoidal).

type albers struct {
	ell    ellipsoid
	lon0   float64
	x0, y0 float64
	n      float64
	c      float64
	rho0   float64
	qPole  float64
}

func newAlbers(ell ellipsoid, lat1, lat2, lat0, lon0, x0, y0 float64) *albers {
	proj := &albers{ell: ell, lon0: lon0, x0: x0, y0: y0}

	m1 := proj.m(lat1)
	q1 := proj.q(lat1)

	if lat1 == lat2 {
		proj.n = math.Sin(lat1)
	} else {
		m2 := proj.m(lat2)
		q2 := proj.q(lat2)
		proj.n = (m1*m1 - m2*m2) / (q2 - q1)
	}

	proj.c = m1*m1 + proj.n*q1
	proj.rho0 = proj.rho(proj.q(lat0))
	proj.qPole = proj.q(math.Pi / 2)

	return proj
}

// m is the Snyder auxiliary cos(lat)/sqrt(1 - e2 sin2(lat)).
func (p *albers) m(lat float64) float64 {
	sinLat := math.Sin(lat)

	return math.Cos(lat) / math.Sqrt(1-p.ell.e2*sinLat*sinLat)
}

// q is the Snyder authalic latitude auxiliary.
func (p *albers) q(lat float64) float64 {
	sinLat := math.Sin(lat)

	if p.ell.e == 0 {
		return 2 * sinLat
	}

	e := p.ell.e

	return (1 - p.ell.e2) * (sinLat/(1-p.ell.e2*sinLat*sinLat) -
		(1/(2*e))*math.Log((1-e*sinLat)/(1+e*sinLat)))
}

func (p *albers) rho(q float64) float64 {
	return p.ell.a * math.Sqrt(p.c-p.n*q) / p.n
}

func (p *albers) forward(lon, lat float64) (float64, float64) {
	rho := p.rho(p.q(lat))
	theta := p.n * adjustLon(lon-p.lon0)

	x := p.x0 + rho*math.Sin(theta)
	y := p.y0 + p.rho0 - rho*math.Cos(theta)

	return x, y
}

func (p *albers) inverse(x, y float64) (float64, float64) {
	dx := x - p.x0
	dy := p.rho0 - (y - p.y0)

	rho := math.Hypot(dx, dy)
	theta := math.Atan2(dx, dy)

	if p.n < 0 {
		rho = -rho
		theta = math.Atan2(-dx, -dy)
	}

	q := (p.c - rho*rho*p.n*p.n/(p.ell.a*p.ell.a)) / p.n

	var lat float64

	switch {
	case q >= p.qPole:
		lat = math.Pi / 2
	case q <= -p.qPole:
		lat = -math.Pi / 2
	case p.ell.e == 0:
		lat = math.Asin(q / 2)
	default:
		lat = math.Asin(math.Max(-1, math.Min(1, q/2)))
		for range phiIterations {
			sinLat := math.Sin(lat)
			oneMinus := 1 - p.ell.e2*sinLat*sinLat
			lat += (oneMinus * oneMinus / (2 * math.Cos(lat))) *
				(q/(1-p.ell.e2) - sinLat/oneMinus +
					(1/(2*p.ell.e))*math.Log((1-p.ell.e*sinLat)/(1+p.ell.e*sinLat)))
		}
	}

	lon := p.lon0 + theta/p.n

	return lon, lat
}

// Lambert conformal conic (two standard parallels).

type lambertConformal struct {
	ell    ellipsoid
	lon0   float64
	x0, y0 float64
	n      float64
	f      float64
	rho0   float64
}

func newLambertConformal(ell ellipsoid, lat1, lat2, lat0, lon0, x0, y0 float64) *lambertConformal {
	proj := &lambertConformal{ell: ell, lon0: lon0, x0: x0, y0: y0}

	m1 := proj.m(lat1)
	t0 := proj.t(lat0)
	t1 := proj.t(lat1)

	if lat1 == lat2 {
		proj.n = math.Sin(lat1)
	} else {
		m2 := proj.m(lat2)
		t2 := proj.t(lat2)
		proj.n = (math.Log(m1) - math.Log(m2)) / (math.Log(t1) - math.Log(t2))
	}

	proj.f = m1 / (proj.n * math.Pow(t1, proj.n))
	proj.rho0 = ell.a * proj.f * math.Pow(t0, proj.n)

	return proj
}

func (p *lambertConformal) m(lat float64) float64 {
	sinLat := math.Sin(lat)

	return math.Cos(lat) / math.Sqrt(1-p.ell.e2*sinLat*sinLat)
}

// t is the Snyder isometric latitude auxiliary.
func (p *lambertConformal) t(lat float64) float64 {
	sinLat := math.Sin(lat)
	e := p.ell.e

	return math.Tan(math.Pi/4-lat/2) / math.Pow((1-e*sinLat)/(1+e*sinLat), e/2)
}

func (p *lambertConformal) forward(lon, lat float64) (float64, float64) {
	rho := p.ell.a * p.f * math.Pow(p.t(lat), p.n)
	theta := p.n * adjustLon(lon-p.lon0)

	x := p.x0 + rho*math.Sin(theta)
	y := p.y0 + p.rho0 - rho*math.Cos(theta)

	return x, y
}

func (p *lambertConformal) inverse(x, y float64) (float64, float64) {
	dx := x - p.x0
	dy := p.rho0 - (y - p.y0)

	rho := math.Hypot(dx, dy)
	theta := math.Atan2(dx, dy)

	if p.n < 0 {
		rho = -rho
		theta = math.Atan2(-dx, -dy)
	}

	t := math.Pow(rho/(p.ell.a*p.f), 1/p.n)

	lat := math.Pi/2 - 2*math.Atan(t)
	for range phiIterations {
		sinLat := math.Sin(lat)
		lat = math.Pi/2 - 2*math.Atan(t*math.Pow((1-p.ell.e*sinLat)/(1+p.ell.e*sinLat), p.ell.e/2))
	}

	lon := p.lon0 + theta/p.n

	return lon, lat
}
