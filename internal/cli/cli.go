// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petrovito/context-creator/internal/config"
	"github.com/petrovito/context-creator/internal/formatter"
	"github.com/petrovito/context-creator/internal/ignore"
	"github.com/petrovito/context-creator/internal/services/clipboard"
	"github.com/petrovito/context-creator/internal/tokenizer"
	"github.com/petrovito/context-creator/internal/types"
	"github.com/petrovito/context-creator/internal/utils"
	"github.com/petrovito/context-creator/internal/walker"
)

const (
	rootUse              = "context-creator [directory]"
	rootShortDescription = "gather project source files into one clipboard-ready document"
	rootLongDescription  = `context-creator walks a project directory, filters files through ignore rules
and a text classifier, and concatenates the survivors into a single fenced
document suitable for pasting into a large-language-model prompt.
The document is placed on the system clipboard by default; use --stdout or
--output to direct it elsewhere.`
	rootUsageExample = `  # Copy the current project to the clipboard
  context-creator

  # Print the document instead of copying it
  context-creator --copy=false --stdout .

  # Exclude generated code and count tokens
  context-creator -e 'dist/' -e '*.gen.go' --tokens ~/src/service`

	excludeFlagName        = "exclude"
	excludeFlagShorthand   = "e"
	noGitignoreFlagName    = "no-gitignore"
	noIgnoreFlagName       = "no-ignore"
	copyFlagName           = "copy"
	stdoutFlagName         = "stdout"
	outputFlagName         = "output"
	outputFlagShorthand    = "o"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	verboseFlagName        = "verbose"
	verboseFlagShorthand   = "v"
	configFlagName         = "config"
	versionFlagName        = "version"
	versionTemplate        = "context-creator version: %s\n"
	defaultPath            = "."
	defaultTokenizerModel  = "gpt-4o"
	excludeFlagDescription = "additional exclude pattern (repeatable)"
	noGitignoreDescription = "do not use .gitignore rule files"
	noIgnoreDescription    = "do not use .ignore rule files"
	copyFlagDescription    = "copy the document to the system clipboard"
	stdoutFlagDescription  = "print the document to standard output"
	outputFlagDescription  = "write the document to a file"
	tokensFlagDescription  = "count tokens of the final document"
	modelFlagDescription   = "tokenizer model used for token counting"
	verboseFlagDescription = "enable debug logging"
	configFlagDescription  = "path to an application configuration file"
	versionFlagDescription = "display application version"

	errorRootMissingFormat      = "root path '%s' does not exist"
	errorRootNotDirectoryFormat = "root path '%s' is not a directory"
	errorRootStatFormat         = "stat failed for '%s': %w"
	errorRootAbsoluteFormat     = "abs failed for '%s': %w"
	errorOutputWriteFormat      = "failed to write output file %s: %w"
	errorClipboardFormat        = "failed to copy to clipboard: %w"
	errorClipboardUnavailable   = "no clipboard mechanism available and no stdout or output fallback enabled"

	warningTokenCountFormat        = "failed to count tokens: %v"
	warningClipboardFallbackFormat = "clipboard delivery failed (%v); document still written to the configured fallback"

	summaryCopiedFormat    = "context copied to clipboard (%d characters, %d files, %s)"
	summaryGeneratedFormat = "context generated (%d characters, %d files, %s)"
	summaryTokensFormat    = "token count: %d (%s)"
)

// runOptions stores the flag values of a single invocation.
type runOptions struct {
	excludePatterns   []string
	disableGitignore  bool
	disableIgnoreFile bool
	copyToClipboard   bool
	printToStdout     bool
	outputFilePath    string
	tokensEnabled     bool
	tokenizerModel    string
	verbose           bool
	configFilePath    string
	// infrastructureDirectories overrides the default always-excluded
	// directory names; populated from application configuration only.
	infrastructureDirectories []string
}

// Execute runs the context-creator application.
func Execute() error {
	rootCommand := createRootCommand()
	rootCommand.SetArgs(normalizeCopyFlagArguments(os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	options := runOptions{tokenizerModel: defaultTokenizerModel}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.ApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			rootArgument := defaultPath
			if len(arguments) > 0 {
				rootArgument = arguments[0]
			}

			loggerInstance, loggerError := utils.NewApplicationLogger(options.verbose)
			if loggerError != nil {
				return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
			}
			defer loggerInstance.Sync()

			applyConfigurationDefaults(command, &options)

			generator := &contextGenerator{
				logger: loggerInstance,
				stdout: command.OutOrStdout(),
				copier: clipboard.NewService(),
			}
			return generator.run(options, rootArgument)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringArrayVarP(&options.excludePatterns, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	flagSet.BoolVar(&options.disableGitignore, noGitignoreFlagName, false, noGitignoreDescription)
	flagSet.BoolVar(&options.disableIgnoreFile, noIgnoreFlagName, false, noIgnoreDescription)
	registerCopyFlag(flagSet, &options.copyToClipboard)
	flagSet.BoolVar(&options.printToStdout, stdoutFlagName, false, stdoutFlagDescription)
	flagSet.StringVarP(&options.outputFilePath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	flagSet.BoolVar(&options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.tokenizerModel, modelFlagName, defaultTokenizerModel, modelFlagDescription)
	flagSet.BoolVarP(&options.verbose, verboseFlagName, verboseFlagShorthand, false, verboseFlagDescription)
	flagSet.StringVar(&options.configFilePath, configFlagName, "", configFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// applyConfigurationDefaults overlays application configuration onto flags
// the user did not set explicitly. Configuration loading problems are not
// fatal; the run proceeds on flag defaults.
func applyConfigurationDefaults(command *cobra.Command, options *runOptions) {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: options.configFilePath,
	})
	if configurationError != nil {
		fmt.Fprintf(command.ErrOrStderr(), "Warning: %v\n", configurationError)
		return
	}

	flagSet := command.Flags()
	if !flagSet.Changed(copyFlagName) && applicationConfiguration.Clipboard != nil {
		options.copyToClipboard = *applicationConfiguration.Clipboard
	}
	if !flagSet.Changed(stdoutFlagName) && applicationConfiguration.Stdout != nil {
		options.printToStdout = *applicationConfiguration.Stdout
	}
	if !flagSet.Changed(tokensFlagName) && applicationConfiguration.Tokens.Enabled != nil {
		options.tokensEnabled = *applicationConfiguration.Tokens.Enabled
	}
	if !flagSet.Changed(modelFlagName) && applicationConfiguration.Tokens.Model != "" {
		options.tokenizerModel = applicationConfiguration.Tokens.Model
	}
	if !flagSet.Changed(noGitignoreFlagName) && applicationConfiguration.Paths.UseGitignore != nil {
		options.disableGitignore = !*applicationConfiguration.Paths.UseGitignore
	}
	if !flagSet.Changed(noIgnoreFlagName) && applicationConfiguration.Paths.UseIgnoreFile != nil {
		options.disableIgnoreFile = !*applicationConfiguration.Paths.UseIgnoreFile
	}
	options.excludePatterns = utils.DeduplicatePatterns(
		append(append([]string{}, applicationConfiguration.Paths.Exclude...), options.excludePatterns...),
	)
	if len(applicationConfiguration.Paths.InfrastructureDirectories) > 0 {
		options.infrastructureDirectories = applicationConfiguration.Paths.InfrastructureDirectories
	}
}

// contextGenerator wires the traversal, formatting and delivery stages. The
// output writer and clipboard copier are injected for testability.
type contextGenerator struct {
	logger *zap.Logger
	stdout io.Writer
	copier clipboard.Copier
}

// run executes one generation run over rootArgument.
func (generator *contextGenerator) run(options runOptions, rootArgument string) error {
	validatedRoot, rootError := validateRoot(rootArgument)
	if rootError != nil {
		return rootError
	}

	warn := func(message string) {
		generator.logger.Warn(message)
	}

	ruleLoader := ignore.Loader{
		RuleFileNames: activeRuleFileNames(options),
		Warn:          warn,
	}
	extraRules := ignore.NewRuleSet(ignore.CompileExtraPatterns(options.excludePatterns, warn))

	infrastructureDirectories := options.infrastructureDirectories
	if len(infrastructureDirectories) == 0 {
		infrastructureDirectories = utils.DefaultInfrastructureDirectories
	}

	aggregator := formatter.NewAggregator()
	walkError := walker.Walk(walker.Options{
		Root:                      validatedRoot.AbsolutePath,
		RuleLoader:                ruleLoader,
		ExtraRules:                extraRules,
		InfrastructureDirectories: infrastructureDirectories,
		ServiceFileNames:          []string{utils.GitIgnoreFileName, utils.IgnoreFileName},
		Visit: func(entry types.FileEntry) error {
			generator.logger.Debug("including file", zap.String("path", entry.RelativePath))
			aggregator.Append(entry)
			return nil
		},
		Skipped: func(entry types.FileEntry) {
			skipFields := []zap.Field{
				zap.String("path", entry.RelativePath),
				zap.String("kind", entry.Kind),
			}
			if entry.MimeType != "" {
				skipFields = append(skipFields, zap.String("mime", entry.MimeType))
			}
			generator.logger.Debug("excluding entry", skipFields...)
		},
		Warn: warn,
	})
	if walkError != nil {
		return walkError
	}

	document := aggregator.Document()
	if options.tokensEnabled {
		generator.countTokens(&document, options.tokenizerModel)
	}

	return generator.deliver(document, options)
}

// countTokens populates the document's token count. Counting failures are
// warnings; the document is still delivered.
func (generator *contextGenerator) countTokens(document *types.ContextDocument, model string) {
	tokenCounter, resolvedModel, counterError := tokenizer.NewCounter(model)
	if counterError != nil {
		generator.logger.Warn(fmt.Sprintf(warningTokenCountFormat, counterError))
		return
	}
	tokenCount, countError := tokenCounter.CountString(document.Text)
	if countError != nil {
		generator.logger.Warn(fmt.Sprintf(warningTokenCountFormat, countError))
		return
	}
	document.Tokens = tokenCount
	document.Model = resolvedModel
}

// deliver writes the document to the configured sinks. Clipboard failure is
// fatal only when no other sink received the document.
func (generator *contextGenerator) deliver(document types.ContextDocument, options runOptions) error {
	fallbackDelivered := false

	if options.outputFilePath != "" {
		if writeError := os.WriteFile(options.outputFilePath, []byte(document.Text), 0o644); writeError != nil {
			return fmt.Errorf(errorOutputWriteFormat, options.outputFilePath, writeError)
		}
		fallbackDelivered = true
	}
	if options.printToStdout {
		fmt.Fprintln(generator.stdout, document.Text)
		fallbackDelivered = true
	}

	humanSize := utils.FormatByteSize(document.ByteCount)
	if options.copyToClipboard {
		copyError := generator.copyToClipboard(document.Text)
		if copyError != nil {
			if !fallbackDelivered {
				return copyError
			}
			generator.logger.Warn(fmt.Sprintf(warningClipboardFallbackFormat, copyError))
		} else {
			generator.logger.Info(fmt.Sprintf(summaryCopiedFormat, document.CharacterCount, document.FileCount, humanSize))
		}
	} else {
		generator.logger.Info(fmt.Sprintf(summaryGeneratedFormat, document.CharacterCount, document.FileCount, humanSize))
	}

	if document.Tokens > 0 {
		generator.logger.Info(fmt.Sprintf(summaryTokensFormat, document.Tokens, document.Model))
	}
	return nil
}

func (generator *contextGenerator) copyToClipboard(text string) error {
	if generator.copier == nil || !generator.copier.Available() {
		return fmt.Errorf(errorClipboardUnavailable)
	}
	if copyError := generator.copier.Copy(text); copyError != nil {
		return fmt.Errorf(errorClipboardFormat, copyError)
	}
	return nil
}

// activeRuleFileNames returns the recognized rule file names in evaluation
// order. The tool's own .ignore file evaluates after .gitignore so it can
// override it within the same directory.
func activeRuleFileNames(options runOptions) []string {
	var ruleFileNames []string
	if !options.disableGitignore {
		ruleFileNames = append(ruleFileNames, utils.GitIgnoreFileName)
	}
	if !options.disableIgnoreFile {
		ruleFileNames = append(ruleFileNames, utils.IgnoreFileName)
	}
	return ruleFileNames
}

// validateRoot converts the root argument to absolute form and verifies that
// it names an existing directory. Failures here are the only fatal path
// errors of a run.
func validateRoot(rootArgument string) (types.ValidatedRoot, error) {
	absolutePath, absoluteError := filepath.Abs(rootArgument)
	if absoluteError != nil {
		return types.ValidatedRoot{}, fmt.Errorf(errorRootAbsoluteFormat, rootArgument, absoluteError)
	}
	cleanPath := filepath.Clean(absolutePath)
	rootInfo, statError := os.Stat(cleanPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return types.ValidatedRoot{}, fmt.Errorf(errorRootMissingFormat, rootArgument)
		}
		return types.ValidatedRoot{}, fmt.Errorf(errorRootStatFormat, rootArgument, statError)
	}
	if !rootInfo.IsDir() {
		return types.ValidatedRoot{}, fmt.Errorf(errorRootNotDirectoryFormat, rootArgument)
	}
	return types.ValidatedRoot{AbsolutePath: cleanPath}, nil
}
