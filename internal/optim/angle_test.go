package optim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/projsim/internal/ballistics"
	"github.com/san-kum/projsim/internal/optim"
)

func object(speed, mass, cd, area float64) ballistics.Params {
	p := ballistics.DefaultParams()
	p.Speed = speed
	p.Mass = mass
	p.DragCoeff = cd
	p.Area = area
	return p
}

var _ = Describe("Grid", func() {
	It("scans 180 half-degree candidates by default", func() {
		angles := optim.DefaultGrid.Angles()
		Expect(angles).To(HaveLen(180))
		Expect(angles[0]).To(Equal(0.0))
		Expect(angles[179]).To(Equal(89.5))
	})

	It("starts the preset grid at one degree", func() {
		angles := optim.PresetGrid.Angles()
		Expect(angles).To(HaveLen(178))
		Expect(angles[0]).To(Equal(1.0))
		Expect(angles[len(angles)-1]).To(Equal(89.5))
	})

	It("rejects a non-positive step", func() {
		g := optim.Grid{Start: 0, Stop: 10, Step: 0}
		Expect(g.Validate()).To(HaveOccurred())
		Expect(g.Angles()).To(BeEmpty())
	})

	It("keeps a single-point grid", func() {
		Expect(optim.Grid{Start: 30, Stop: 30, Step: 1}.Angles()).To(Equal([]float64{30}))
	})
})

var _ = Describe("AngleSearch", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("finds 45 degrees without drag", func() {
		p := ballistics.DefaultParams()
		p.Speed = 20
		p.DragCoeff = 0

		res, err := optim.NewAngleSearch(optim.DefaultGrid, 1).Search(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Angle).To(BeNumerically("~", 45, 1))
		Expect(res.Range).To(BeNumerically("~", p.WithAngle(45).IdealRange(), 0.2))
		Expect(res.Evaluated).To(Equal(180))
	})

	DescribeTable("optimum below 45 degrees with drag",
		func(p ballistics.Params) {
			res, err := optim.NewAngleSearch(optim.DefaultGrid, 0).Search(ctx, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Angle).To(BeNumerically(">", 0))
			Expect(res.Angle).To(BeNumerically("<", 45))
			Expect(res.Range).To(BeNumerically("<", p.WithAngle(45).IdealRange()))
		},
		Entry("sphere", object(20, 0.5, 0.47, 0.00785)),
		Entry("cricket ball", object(30, 0.160, 0.42, 0.00396)),
		Entry("golf ball", object(40, 0.0459, 0.24, 0.00143)),
		Entry("football", object(25, 0.430, 0.25, 0.038)),
	)

	It("returns the trajectory at the best angle", func() {
		p := object(25, 0.430, 0.25, 0.038)

		res, err := optim.NewAngleSearch(optim.DefaultGrid, 4).Search(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Trajectory).NotTo(BeNil())
		Expect(res.Trajectory.Params.Angle).To(Equal(res.Angle))
		Expect(res.Trajectory.Range).To(Equal(res.Range))
	})

	It("records a curve whose maximum is the result", func() {
		p := object(30, 0.160, 0.42, 0.00396)

		res, err := optim.NewAngleSearch(optim.PresetGrid, 2).Search(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Curve).To(HaveLen(178))
		for i, pt := range res.Curve {
			Expect(pt.Range).To(BeNumerically("<=", res.Range))
			if i > 0 {
				Expect(pt.Angle).To(BeNumerically(">", res.Curve[i-1].Angle))
			}
		}
	})

	It("matches the sequential scan when run in parallel", func() {
		p := object(35, 0.0459, 0.24, 0.00143)
		p.Wind = -4

		seq, err := optim.NewAngleSearch(optim.DefaultGrid, 1).Search(ctx, p)
		Expect(err).NotTo(HaveOccurred())

		for _, workers := range []int{2, 3, 8, 64} {
			par, err := optim.NewAngleSearch(optim.DefaultGrid, workers).Search(ctx, p)
			Expect(err).NotTo(HaveOccurred())
			Expect(par).To(Equal(seq))
		}
	})

	It("returns zero for a launch that never leaves the ground", func() {
		p := ballistics.DefaultParams()
		p.Speed = 0
		p.Wind = 3
		grid := optim.Grid{Start: 10, Stop: 20, Step: 1}

		res, err := optim.NewAngleSearch(grid, 4).Search(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Angle).To(Equal(0.0))
		Expect(res.Range).To(Equal(0.0))
		Expect(res.Trajectory).To(BeNil())
		Expect(res.Curve).To(HaveLen(11))
	})

	It("returns zero for a degenerate launch", func() {
		p := ballistics.DefaultParams()

		res, err := optim.NewAngleSearch(optim.DefaultGrid, 0).Search(ctx, p)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Angle).To(BeZero())
		Expect(res.Range).To(BeZero())
		Expect(res.Trajectory).To(BeNil())
	})

	It("stops on a cancelled context", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		p := object(20, 0.5, 0.47, 0.00785)
		for _, workers := range []int{1, 4} {
			_, err := optim.NewAngleSearch(optim.DefaultGrid, workers).Search(cctx, p)
			Expect(err).To(MatchError(context.Canceled))
		}
	})
})

var _ = Describe("Best", func() {
	It("keeps the lowest angle on exact ties", func() {
		curve := []optim.Point{
			{Angle: 10, Range: 5},
			{Angle: 20, Range: 8},
			{Angle: 30, Range: 8},
			{Angle: 40, Range: 7},
		}
		best, ok := optim.Best(curve)
		Expect(ok).To(BeTrue())
		Expect(best).To(Equal(optim.Point{Angle: 20, Range: 8}))
	})

	It("ignores ranges that do not beat zero", func() {
		best, ok := optim.Best([]optim.Point{{Angle: 5, Range: 0}, {Angle: 10, Range: -2}})
		Expect(ok).To(BeFalse())
		Expect(best).To(Equal(optim.Point{}))
	})
})

var _ = Describe("Compare", func() {
	It("orders user, standard and optimal shots", func() {
		p := object(30, 0.160, 0.42, 0.00396)

		scenarios, res, err := optim.Compare(context.Background(), optim.NewAngleSearch(optim.PresetGrid, 0), p, 60)
		Expect(err).NotTo(HaveOccurred())
		Expect(scenarios).To(HaveLen(3))

		Expect(scenarios[0].Label).To(Equal("user"))
		Expect(scenarios[0].Angle).To(Equal(60.0))
		Expect(scenarios[1].Angle).To(Equal(optim.StandardAngle))
		Expect(scenarios[2].Angle).To(Equal(res.Angle))

		Expect(scenarios[2].Range()).To(BeNumerically(">=", scenarios[0].Range()))
		Expect(scenarios[2].Range()).To(BeNumerically(">=", scenarios[1].Range()))
	})
})
