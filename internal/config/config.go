// Package config resolves the options of a sortpar run from command line
// flags, SORTPAR_* environment variables and an optional config file.
//
// Precedence is flags, then environment, then the config file, then defaults.
// Keys in the config file use the long flag names, plus two keys without a
// flag: "filters", an ordered list of filter names, and "strategy".
package config

import (
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lanrat/sortpar"
	"github.com/lanrat/sortpar/internal/errors"
	"github.com/lanrat/sortpar/internal/lineio"
)

// EnvPrefix is prepended to every environment variable read by Load
const EnvPrefix = "SORTPAR"

// StdinName is the file name that stands for standard input
const StdinName = lineio.StdinName

// DefaultLogLevel is used when no level is configured
const DefaultLogLevel = "warn"

// Flag names, also used as config file and environment keys
const (
	FlagIgnoreLeadingBlanks = "ignore-leading-blanks"
	FlagDictionaryOrder     = "dictionary-order"
	FlagIgnoreCase          = "ignore-case"
	FlagGeneralNumeric      = "general-numeric-sort"
	FlagHumanNumeric        = "human-numeric-sort"
	FlagVersionSort         = "version-sort"
	FlagReverse             = "reverse"
	FlagStable              = "stable"
	FlagUnique              = "unique"
	FlagCheck               = "check"
	FlagOutput              = "output"
	FlagDecompress          = "decompress"
	FlagParallel            = "parallel"
	FlagLogLevel            = "log-level"
	FlagConfig              = "config"

	KeyFilters  = "filters"
	KeyStrategy = "strategy"
)

// filterFlags lists the filter flags in the order their filters are applied
var filterFlags = []struct {
	name   string
	filter sortpar.Filter
}{
	{FlagIgnoreLeadingBlanks, sortpar.StripLeadingBlanks},
	{FlagDictionaryOrder, sortpar.DictionaryOrder},
	{FlagIgnoreCase, sortpar.CaseFold},
}

// strategyFlags maps the mutually exclusive strategy flags to their strategy
var strategyFlags = []struct {
	name     string
	strategy sortpar.Strategy
}{
	{FlagGeneralNumeric, sortpar.GeneralNumeric},
	{FlagHumanNumeric, sortpar.NaturalOrder},
	{FlagVersionSort, sortpar.VersionOrder},
}

// StrategyFlags returns the names of the flags selecting a sort strategy
func StrategyFlags() []string {
	names := make([]string, 0, len(strategyFlags))
	for _, sf := range strategyFlags {
		names = append(names, sf.name)
	}
	return names
}

// Options is the resolved configuration of a run
type Options struct {
	Files      []string // inputs in order, StdinName for standard input
	Output     string   // output file, empty for standard output
	Check      bool     // only check that the input is sorted
	Decompress bool     // decompress gzip and zstd inputs
	Parallel   int      // sort workers, 0 for one per CPU
	LogLevel   string
	Sort       sortpar.SortConfig
}

// ExecConfig returns the sort execution settings for the options
func (o *Options) ExecConfig() *sortpar.Config {
	c := sortpar.DefaultConfig()
	if o.Parallel > 0 {
		c.NumWorkers = o.Parallel
	}
	return c
}

// DefineFlags registers every sortpar flag on flags
func DefineFlags(flags *pflag.FlagSet) {
	flags.BoolP(FlagIgnoreLeadingBlanks, "b", false, "ignore leading blanks")
	flags.BoolP(FlagDictionaryOrder, "d", false, "consider only blanks and alphanumeric characters")
	flags.BoolP(FlagIgnoreCase, "f", false, "fold lower case to upper case characters")
	flags.BoolP(FlagGeneralNumeric, "g", false, "compare according to general numerical value")
	flags.BoolP(FlagHumanNumeric, "h", false, "compare embedded numbers by value (natural order)")
	flags.BoolP(FlagVersionSort, "V", false, "natural sort of (version) numbers within text")
	flags.BoolP(FlagReverse, "r", false, "reverse the result of comparisons")
	flags.BoolP(FlagStable, "s", false, "stabilize sort by keeping the input order of equal lines")
	flags.BoolP(FlagUnique, "u", false, "output only the first of lines with identical text")
	flags.BoolP(FlagCheck, "c", false, "check for sorted input; do not sort")
	flags.StringP(FlagOutput, "o", "", "write result to `FILE` instead of standard output")
	flags.BoolP(FlagDecompress, "z", false, "decompress gzip and zstd compressed inputs")
	flags.Int(FlagParallel, 0, "number of sort workers, 0 uses one per CPU")
	flags.String(FlagLogLevel, DefaultLogLevel, "log level (trace, debug, info, warn, error)")
	flags.String(FlagConfig, "", "read defaults from config `FILE` (toml, yaml or json)")
}

// Load resolves the options of a run from flags, the environment and the
// config file named by the --config flag. args are the positional arguments.
func Load(flags *pflag.FlagSet, args []string) (*Options, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(FlagLogLevel, DefaultLogLevel)

	if err := v.BindPFlags(flags); err != nil {
		return nil, errors.WithStackTrace(err)
	}

	configFile, err := flags.GetString(FlagConfig)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	if configFile != "" {
		if configFile, err = homedir.Expand(configFile); err != nil {
			return nil, errors.WithStackTrace(err)
		}
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithStackTraceAndPrefix(err, "reading config file %s", configFile)
		}
	}

	return resolve(v, flags, args)
}

// resolve builds Options from v, collecting every problem into one error
func resolve(v *viper.Viper, flags *pflag.FlagSet, args []string) (*Options, error) {
	var result *multierror.Error

	opts := &Options{
		Check:      v.GetBool(FlagCheck),
		Decompress: v.GetBool(FlagDecompress),
		Parallel:   v.GetInt(FlagParallel),
		LogLevel:   v.GetString(FlagLogLevel),
		Sort: sortpar.SortConfig{
			Reverse: v.GetBool(FlagReverse),
			Stable:  v.GetBool(FlagStable),
			Unique:  v.GetBool(FlagUnique),
		},
	}

	if opts.Parallel < 0 {
		result = multierror.Append(result, &ConfigError{Field: FlagParallel, Value: opts.Parallel, Reason: "must not be negative"})
	}
	if _, err := logrus.ParseLevel(opts.LogLevel); err != nil {
		result = multierror.Append(result, &ConfigError{Field: FlagLogLevel, Value: opts.LogLevel, Reason: "unknown log level"})
	}

	filters, err := resolveFilters(v)
	if err != nil {
		result = multierror.Append(result, err)
	}
	opts.Sort.Filters = filters

	strategy, err := resolveStrategy(v, flags)
	if err != nil {
		result = multierror.Append(result, err)
	}
	opts.Sort.Strategy = strategy

	if output := v.GetString(FlagOutput); output != "" {
		if opts.Output, err = homedir.Expand(output); err != nil {
			result = multierror.Append(result, &ConfigError{Field: FlagOutput, Value: output, Reason: err.Error()})
		}
	}

	opts.Files = make([]string, 0, max(len(args), 1))
	for _, name := range args {
		if name == StdinName {
			opts.Files = append(opts.Files, name)
			continue
		}
		expanded, err := homedir.Expand(name)
		if err != nil {
			result = multierror.Append(result, &ConfigError{Field: "FILE", Value: name, Reason: err.Error()})
			continue
		}
		opts.Files = append(opts.Files, expanded)
	}
	if len(opts.Files) == 0 {
		opts.Files = append(opts.Files, StdinName)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return opts, nil
}

// resolveFilters returns the filters listed under KeyFilters followed by the
// filters enabled by flag that are not listed yet
func resolveFilters(v *viper.Viper) ([]sortpar.Filter, error) {
	var filters []sortpar.Filter
	seen := make(map[sortpar.Filter]bool)
	add := func(f sortpar.Filter) {
		if !seen[f] {
			seen[f] = true
			filters = append(filters, f)
		}
	}

	for _, item := range v.GetStringSlice(KeyFilters) {
		// environment values arrive as a single string
		for _, name := range strings.FieldsFunc(item, func(r rune) bool { return r == ',' || r == ' ' }) {
			f, err := sortpar.ParseFilter(name)
			if err != nil {
				return nil, &ConfigError{Field: KeyFilters, Value: name, Reason: "unknown filter"}
			}
			add(f)
		}
	}

	for _, ff := range filterFlags {
		if v.GetBool(ff.name) {
			add(ff.filter)
		}
	}
	return filters, nil
}

// resolveStrategy returns the strategy of the highest precedence source that
// selects one: strategy flags, then the environment, then the config file.
// Only selections from the same source can conflict.
func resolveStrategy(v *viper.Viper, flags *pflag.FlagSet) (sortpar.Strategy, error) {
	sources := []func(key string) bool{
		func(key string) bool {
			f := flags.Lookup(key)
			return f != nil && f.Changed
		},
		func(key string) bool {
			_, ok := os.LookupEnv(envName(key))
			return ok
		},
		v.InConfig,
	}
	for _, isSet := range sources {
		if strategy, found, err := selectStrategy(v, isSet); found || err != nil {
			return strategy, err
		}
	}
	return sortpar.Lexicographic, nil
}

// selectStrategy returns the strategy selected by the keys isSet reports,
// found is false when none of them selects one
func selectStrategy(v *viper.Viper, isSet func(key string) bool) (strategy sortpar.Strategy, found bool, err error) {
	var names []string
	var strategies []sortpar.Strategy
	for _, sf := range strategyFlags {
		if isSet(sf.name) && v.GetBool(sf.name) {
			names = append(names, sf.name)
			strategies = append(strategies, sf.strategy)
		}
	}
	if isSet(KeyStrategy) {
		name := v.GetString(KeyStrategy)
		s, err := sortpar.ParseStrategy(name)
		if err != nil {
			return sortpar.Lexicographic, true, &ConfigError{Field: KeyStrategy, Value: name, Reason: "unknown sort strategy"}
		}
		names = append(names, KeyStrategy+"="+name)
		strategies = append(strategies, s)
	}

	if len(strategies) == 0 {
		return sortpar.Lexicographic, false, nil
	}
	for _, s := range strategies[1:] {
		if s != strategies[0] {
			return sortpar.Lexicographic, true, &ConfigError{Field: KeyStrategy, Value: strings.Join(names, ", "), Reason: "sort strategies are mutually exclusive"}
		}
	}
	return strategies[0], true, nil
}

// envName returns the environment variable read for key
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}
