package cube

import (
	"github.com/sirupsen/logrus"

	"github.com/eodatahub/hazcube/internal/indicators"
	"github.com/eodatahub/hazcube/internal/zarr"
)

// Options configures one cubify run.
type Options struct {
	StorePath  string
	OutputDir  string
	Descriptor *indicators.Descriptor
	SplitYears bool
	Log        *logrus.Logger
}

// Cubify opens the source store read-only, catalogs its indicator arrays,
// groups them by year (or into a single group), and assembles one output
// cube store per group. It returns the mapping from year to output path.
// The first failure aborts the whole invocation; there is no partial
// recovery.
func Cubify(opts Options) (map[int]string, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	store, err := zarr.OpenStore(opts.StorePath)
	if err != nil {
		return nil, err
	}

	catalog, err := BuildCatalog(store, IndicatorMember)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"store":   opts.StorePath,
		"records": len(catalog.Keys),
	}).Debug("cataloged source arrays")

	groups := GroupByYear(catalog, opts.SplitYears)

	outputPaths := make(map[int]string, len(groups))
	for _, g := range groups {
		outputPath, err := AssembleGroup(store, g, opts.Descriptor, opts.OutputDir, log)
		if err != nil {
			return nil, err
		}
		outputPaths[g.Year] = outputPath
	}
	return outputPaths, nil
}
