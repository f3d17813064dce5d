package commands

import (
	"github.com/spf13/cobra"

	"github.com/ontovault/ontovault/concepts"
)

// ConceptCmd groups the candidate-concept workflow operations.
var ConceptCmd = &cobra.Command{
	Use:   "concept",
	Short: "Submit, decide, and list candidate concepts",
	Long: `concept — Candidate concept approval workflow

Examples:
  ontovault concept submit --label "Public Safety (Principle)" \
      --category Principle --uri http://example.org/onto#PublicSafety
  ontovault concept decide 3f1c... approved --by reviewer --reason "clear fit"
  ontovault concept list --domain eth --category Role
  ontovault concept entities Role --domain eth`,
}

var conceptSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a candidate concept for review",
	RunE:  runConceptSubmit,
}

var conceptDecideCmd = &cobra.Command{
	Use:   "decide <concept-id> <status>",
	Short: "Approve, reject, or deprecate a concept",
	Args:  cobra.ExactArgs(2),
	RunE:  runConceptDecide,
}

var conceptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidate concepts",
	RunE:  runConceptList,
}

var conceptEntitiesCmd = &cobra.Command{
	Use:   "entities <category>",
	Short: "List entities of a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runConceptEntities,
}

var (
	submitURIFlag        string
	submitLabelFlag      string
	submitSemanticFlag   string
	submitCategoryFlag   string
	submitDescFlag       string
	submitDomainFlag     string
	submitByFlag         string
	submitConfidenceFlag float64
	submitMethodFlag     string
	submitSourceFlag     string
	submitReasoningFlag  string
	submitAssignedFlag   string
	submitPriorityFlag   string

	decideByFlag     string
	decideReasonFlag string

	listDomainFlag   string
	listCategoryFlag string
	listStatusFlag   string
	listLimitFlag    int
	listOffsetFlag   int

	entitiesDomainFlag string
	entitiesStatusFlag string
)

func init() {
	conceptSubmitCmd.Flags().StringVar(&submitURIFlag, "uri", "", "Concept URI (required)")
	conceptSubmitCmd.Flags().StringVar(&submitLabelFlag, "label", "", "Concept label (required)")
	conceptSubmitCmd.Flags().StringVar(&submitSemanticFlag, "semantic-label", "", "Semantic label (derived from label when omitted)")
	conceptSubmitCmd.Flags().StringVar(&submitCategoryFlag, "category", "", "Concept category (required)")
	conceptSubmitCmd.Flags().StringVar(&submitDescFlag, "description", "", "Concept description")
	conceptSubmitCmd.Flags().StringVar(&submitDomainFlag, "domain", "", "Domain (default: configured default domain)")
	conceptSubmitCmd.Flags().StringVar(&submitByFlag, "by", "", "Submitter")
	conceptSubmitCmd.Flags().Float64Var(&submitConfidenceFlag, "confidence", 0, "Extraction confidence score")
	conceptSubmitCmd.Flags().StringVar(&submitMethodFlag, "method", "", "Extraction method")
	conceptSubmitCmd.Flags().StringVar(&submitSourceFlag, "source", "", "Source document")
	conceptSubmitCmd.Flags().StringVar(&submitReasoningFlag, "reasoning", "", "Extraction reasoning")
	conceptSubmitCmd.Flags().StringVar(&submitAssignedFlag, "assign", "", "Reviewer to assign")
	conceptSubmitCmd.Flags().StringVar(&submitPriorityFlag, "priority", "", "Review priority (low|normal|high)")

	conceptDecideCmd.Flags().StringVar(&decideByFlag, "by", "", "Reviewer")
	conceptDecideCmd.Flags().StringVar(&decideReasonFlag, "reason", "", "Decision reason")

	conceptListCmd.Flags().StringVar(&listDomainFlag, "domain", "", "Domain (default: configured default domain)")
	conceptListCmd.Flags().StringVar(&listCategoryFlag, "category", "", "Filter by category")
	conceptListCmd.Flags().StringVar(&listStatusFlag, "status", "", "Filter by status (default: candidate)")
	conceptListCmd.Flags().IntVar(&listLimitFlag, "limit", 50, "Page size")
	conceptListCmd.Flags().IntVar(&listOffsetFlag, "offset", 0, "Page offset")

	conceptEntitiesCmd.Flags().StringVar(&entitiesDomainFlag, "domain", "", "Domain (default: configured default domain)")
	conceptEntitiesCmd.Flags().StringVar(&entitiesStatusFlag, "status", "", "Concept status to include (default: approved)")

	ConceptCmd.AddCommand(conceptSubmitCmd)
	ConceptCmd.AddCommand(conceptDecideCmd)
	ConceptCmd.AddCommand(conceptListCmd)
	ConceptCmd.AddCommand(conceptEntitiesCmd)
}

func runConceptSubmit(cmd *cobra.Command, args []string) error {
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	domain := submitDomainFlag
	if domain == "" {
		domain = cfg.Storage.DefaultDomain
	}

	candidate := concepts.Candidate{
		URI:              submitURIFlag,
		Label:            submitLabelFlag,
		SemanticLabel:    submitSemanticFlag,
		Category:         submitCategoryFlag,
		Description:      submitDescFlag,
		ConfidenceScore:  submitConfidenceFlag,
		ExtractionMethod: submitMethodFlag,
		SourceDocument:   submitSourceFlag,
		LLMReasoning:     submitReasoningFlag,
		AssignedTo:       submitAssignedFlag,
		Priority:         submitPriorityFlag,
	}
	result, err := newManager(database).SubmitCandidate(cmd.Context(), candidate, domain, submitByFlag)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runConceptDecide(cmd *cobra.Command, args []string) error {
	database, _, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	change, err := newManager(database).UpdateStatus(cmd.Context(), args[0], args[1], decideByFlag, decideReasonFlag)
	if err != nil {
		return err
	}
	return printJSON(change)
}

func runConceptList(cmd *cobra.Command, args []string) error {
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	domain := listDomainFlag
	if domain == "" {
		domain = cfg.Storage.DefaultDomain
	}

	page, err := newManager(database).GetCandidates(cmd.Context(), domain, listCategoryFlag, listStatusFlag, listLimitFlag, listOffsetFlag)
	if err != nil {
		return err
	}
	return printJSON(page)
}

func runConceptEntities(cmd *cobra.Command, args []string) error {
	database, cfg, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	domain := entitiesDomainFlag
	if domain == "" {
		domain = cfg.Storage.DefaultDomain
	}

	entities, err := newManager(database).GetEntitiesByCategory(cmd.Context(), args[0], domain, entitiesStatusFlag)
	if err != nil {
		return err
	}
	return printJSON(entities)
}
