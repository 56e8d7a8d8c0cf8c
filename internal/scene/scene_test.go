package scene_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

// steeredConfig is the canonical 11-element, half-wavelength, 30-degree
// steering setup whose pattern peaks at exactly 1.0.
func steeredConfig() phased.Config {
	cfg := phased.DefaultConfig()
	cfg.NumElements = 11
	cfg.Pitch = cfg.SpeedOfSound / cfg.Frequency / 2
	cfg.SteeringAngle = 30
	return cfg
}

var _ = Describe("Scene", func() {
	var s *scene.Scene

	BeforeEach(func() {
		s = scene.New()
	})

	Describe("array registry", func() {
		It("assigns increasing ids in insertion order", func() {
			first := s.Add(phased.NewDefault())
			second := s.Add(phased.NewDefault())

			Expect(first).To(Equal(1))
			Expect(second).To(Equal(2))
			Expect(s.IDs()).To(Equal([]int{1, 2}))
			Expect(s.Len()).To(Equal(2))
		})

		It("reports absence explicitly", func() {
			_, ok := s.Array(99)
			Expect(ok).To(BeFalse())

			_, err := s.ArrayConfig(99)
			Expect(err).To(MatchError(scene.ErrArrayNotFound))

			Expect(s.Remove(99)).To(MatchError(scene.ErrArrayNotFound))
			Expect(s.SetParam(99, "amplitude", 1)).To(MatchError(scene.ErrArrayNotFound))
		})

		It("removes arrays without rewinding the allocator", func() {
			s.Add(phased.NewDefault())
			middle := s.Add(phased.NewDefault())
			s.Add(phased.NewDefault())

			Expect(s.Remove(middle)).To(Succeed())
			Expect(s.IDs()).To(Equal([]int{1, 3}))

			next := s.Add(phased.NewDefault())
			Expect(next).To(Equal(4))
		})

		It("rewinds the allocator only on Clear", func() {
			s.Add(phased.NewDefault())
			s.Add(phased.NewDefault())

			s.Clear()
			Expect(s.Len()).To(BeZero())
			Expect(s.Add(phased.NewDefault())).To(Equal(1))
		})
	})

	Describe("medium sync", func() {
		It("syncs a new array's speed of sound to the scene", func() {
			settings := scene.DefaultSettings()
			settings.SpeedOfSound = 1500
			s.SetSettings(settings)

			id := s.Add(phased.NewDefault())
			cfg, err := s.ArrayConfig(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.SpeedOfSound).To(Equal(1500.0))
		})

		It("lets an array diverge after insertion", func() {
			id := s.Add(phased.NewDefault())
			Expect(s.Modify(id, func(a *phased.Array) {
				a.SetSpeedOfSound(999)
			})).To(Succeed())

			cfg, _ := s.ArrayConfig(id)
			Expect(cfg.SpeedOfSound).To(Equal(999.0))
			Expect(s.Settings().SpeedOfSound).To(Equal(343.0))
		})
	})

	Describe("aggregate field", func() {
		It("sums identical arrays coherently", func() {
			s.Add(phased.NewDefault())
			single := s.FieldAt(0.01, 0.08, 0)

			s.Add(phased.NewDefault())
			Expect(s.FieldAt(0.01, 0.08, 0)).To(BeNumerically("~", 2*single, 1e-9))
		})

		It("drops disabled arrays from the sum", func() {
			s.Add(phased.NewDefault())
			second := s.Add(phased.NewDefault())
			single := s.FieldAt(0.01, 0.08, 0) / 2

			Expect(s.Modify(second, func(a *phased.Array) {
				a.SetEnabled(false)
			})).To(Succeed())

			Expect(s.FieldAt(0.01, 0.08, 0)).To(BeNumerically("~", single, 1e-9))
		})

		It("combines phasors like instantaneous fields", func() {
			s.AddConfig(steeredConfig())
			re, im := s.FieldPhasor(0.02, 0.05)
			Expect(s.FieldAt(0.02, 0.05, 0)).To(BeNumerically("~", re, 1e-9))
			Expect(re*re + im*im).To(BeNumerically(">", 0))
		})
	})

	Describe("composite beam pattern", func() {
		It("peaks at the steering angle", func() {
			s.AddConfig(steeredConfig())
			Expect(s.BeamPattern(30)).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("matches the single-array pattern for coincident duplicates", func() {
			s.AddConfig(steeredConfig())
			single := s.BeamPattern(30)

			s.AddConfig(steeredConfig())
			Expect(s.BeamPattern(30)).To(BeNumerically("~", single, 1e-9))
		})

		It("excludes disabled arrays from the normalization", func() {
			s.AddConfig(steeredConfig())

			off := steeredConfig()
			off.Enabled = false
			s.AddConfig(off)

			Expect(s.BeamPattern(30)).To(BeNumerically("~", 1.0, 1e-9))
		})

		It("returns zero for an empty scene", func() {
			Expect(s.BeamPattern(0)).To(BeZero())
			re, im := s.BeamResponse(0)
			Expect(re).To(BeZero())
			Expect(im).To(BeZero())
		})
	})

	Describe("snapshots", func() {
		It("freezes arrays in insertion order", func() {
			s.AddConfig(steeredConfig())
			s.Add(phased.NewDefault())

			snap := s.Snapshot()
			Expect(snap.Arrays).To(HaveLen(2))
			Expect(snap.Arrays[0].ID).To(Equal(1))
			Expect(snap.Arrays[0].Config.SteeringAngle).To(Equal(30.0))
			Expect(snap.Arrays[0].Elements).To(HaveLen(11))
			Expect(snap.Settings.SpeedOfSound).To(Equal(343.0))
		})

		It("is independent of later mutation", func() {
			id := s.AddConfig(steeredConfig())
			snap := s.Snapshot()

			Expect(s.Modify(id, func(a *phased.Array) {
				a.SetSteeringAngle(-10)
			})).To(Succeed())

			Expect(snap.Arrays[0].Config.SteeringAngle).To(Equal(30.0))
		})
	})

	Describe("settings", func() {
		It("sanitizes non-physical values", func() {
			s.SetSettings(scene.Settings{
				DisplayMode:  "bogus",
				DynamicRange: -3,
			})

			got := s.Settings()
			Expect(got.DisplayMode).To(Equal(scene.DisplayPressure))
			Expect(got.DynamicRange).To(Equal(40.0))
			Expect(got.FieldWidth).To(Equal(0.4))
			Expect(got.SpeedOfSound).To(Equal(343.0))
		})

		It("keeps intensity mode", func() {
			settings := scene.DefaultSettings()
			settings.DisplayMode = scene.DisplayIntensity
			s.SetSettings(settings)
			Expect(s.Settings().DisplayMode).To(Equal(scene.DisplayIntensity))
		})
	})
})
