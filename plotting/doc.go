// Package plotting renders measurements, nanoparticles and FTIR overlays
// with gonum/plot.
//
// # Usage
//
//	p, err := plotting.Nanoparticle(np, true)
//	if err != nil {
//		return err
//	}
//	err = plotting.Save(p, "NaYF4_Er.png", 0, 0)
package plotting
