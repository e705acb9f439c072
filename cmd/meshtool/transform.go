package main

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/transforms"
)

type transformOptions struct {
	translate []float32
	scale     []float32
	rotateY   float32 // degrees
	mirror    string
	inverse   bool
	keepWind  bool
}

func vec3Flag(name string, v []float32) (math.Vec3, error) {
	if len(v) != 3 {
		return math.Vec3{}, fmt.Errorf("--%s needs 3 values, got %d", name, len(v))
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

// sequence builds scale, then rotation and translation, then the optional mirror.
func (o transformOptions) sequence() (*math.TransformSequence, error) {
	translate, err := vec3Flag("translate", o.translate)
	if err != nil {
		return nil, err
	}
	scale, err := vec3Flag("scale", o.scale)
	if err != nil {
		return nil, err
	}
	rot := math.QuatFromAxisAngle(math.Vec3{Y: 1}, o.rotateY*math32.Pi/180)

	seq := &math.TransformSequence{}
	seq.Append(math.NewTransform(translate, rot, scale))

	if o.mirror != "" {
		mirror := math.Vec3One
		switch o.mirror {
		case "x":
			mirror.X = -1
		case "y":
			mirror.Y = -1
		case "z":
			mirror.Z = -1
		default:
			return nil, fmt.Errorf("--mirror %q: want x, y or z", o.mirror)
		}
		seq.Append(math.NewTransform(math.Vec3{}, math.QuatIdentity(), mirror))
	}
	return seq, nil
}

func (a *app) transformCmd() *cobra.Command {
	opts := transformOptions{}
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Apply a scale, rotation, translation and mirror to the generated mesh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seq, err := opts.sequence()
			if err != nil {
				return err
			}
			m, err := a.buildMesh()
			if err != nil {
				return err
			}

			before := m.Bounds()
			reverse := !opts.keepWind
			if opts.inverse {
				transforms.ApplyTransformInverse(m, seq, reverse)
			} else {
				transforms.ApplyTransformSequence(m, seq, reverse)
			}
			if err := m.CheckValidity(); err != nil {
				return fmt.Errorf("mesh invalid after transform: %w", err)
			}

			reversed := reverse && seq.WillInvert()
			a.log.Debug("transform applied",
				zap.Int("steps", seq.Len()),
				zap.Float32("determinant", seq.Determinant()),
				zap.Bool("reversed", reversed))

			out := cmd.OutOrStdout()
			if !asYAML {
				fmt.Fprintf(out, "Steps:       %d\n", seq.Len())
				fmt.Fprintf(out, "Determinant: %.4g\n", seq.Determinant())
				fmt.Fprintf(out, "Reversed:    %t\n", reversed)
				fmt.Fprintf(out, "Center:      %v -> %v\n", before.Center(), m.Bounds().Center())
				fmt.Fprintln(out)
			}
			return writeStats(out, collectStats(m), asYAML)
		},
	}
	f := cmd.Flags()
	f.Float32SliceVar(&opts.translate, "translate", []float32{0, 0, 0}, "Translation x,y,z")
	f.Float32SliceVar(&opts.scale, "scale", []float32{1, 1, 1}, "Scale x,y,z")
	f.Float32Var(&opts.rotateY, "rotate-y", 0, "Rotation about +Y in degrees")
	f.StringVar(&opts.mirror, "mirror", "", "Mirror across an axis: x, y or z")
	f.BoolVar(&opts.inverse, "inverse", false, "Apply the inverse of the sequence")
	f.BoolVar(&opts.keepWind, "keep-winding", false, "Do not reverse triangles when the transform mirrors")
	f.BoolVar(&asYAML, "yaml", false, "Print the final stats as YAML")
	return cmd
}
