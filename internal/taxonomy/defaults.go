package taxonomy

// DefaultTaxonomies returns the built-in rule tables. Each table preserves
// one of the historical analysis passes over the archive; scoring weights
// carry over unchanged.
func DefaultTaxonomies() []Taxonomy {
	return []Taxonomy{
		{
			Name: "themes",
			Rules: []Rule{
				{ID: "automation", Category: "Automation", Weight: 1, Expressions: []string{"automat", "workflow", "system", "process", "efficiency"}},
				{ID: "ai_development", Category: "AI Development", Weight: 1, Expressions: []string{"ai", "llm", "gpt", "claude", "model", "prompt"}},
				{ID: "business", Category: "Business", Weight: 1, Expressions: []string{"business", "customer", "revenue", "scale", "growth"}},
				{ID: "coding", Category: "Coding", Weight: 1, Expressions: []string{"code", "function", "api", "database", "backend", "frontend"}},
				{ID: "golf", Category: "Golf", Weight: 1, Expressions: []string{"golf", "simulator", "clubhouse", "booking", "facility"}},
				{ID: "philosophy", Category: "Philosophy", Weight: 1, Expressions: []string{"think", "mental", "recursive", "upstream", "logic"}},
				{ID: "learning", Category: "Learning", Weight: 1, Expressions: []string{"learn", "understand", "knowledge", "pattern", "insight"}},
			},
		},
		{
			Name: "thinking_styles",
			Rules: []Rule{
				{ID: "recursive_thinking", Category: "Recursive Thinking", Weight: 1, Expressions: []string{`recurs\w+|loop|iterate|feedback`}},
				{ID: "upstream_logic", Category: "Upstream Logic", Weight: 1, Expressions: []string{`upstream|downstream|root cause|first principle`}},
				{ID: "modular_design", Category: "System Architecture", Weight: 1, Expressions: []string{`modular|component|building block|compose`}},
				{ID: "compression", Category: "Compression & Abstraction", Weight: 1, Expressions: []string{`compress|simplif|abstract|distill`}},
				{ID: "system_thinking", Category: "System Architecture", Weight: 1, Expressions: []string{`system|holistic|interconnect|ecosystem`}},
				{ID: "data_driven", Category: "Other", Weight: 1, Expressions: []string{`data|metric|measure|track|analyz`}},
			},
		},
		{
			Name: "cognitive_patterns",
			Rules: []Rule{
				{ID: "recursive_systems", Category: "Recursive Thinking", Weight: 3, Expressions: []string{
					`recursive\s+(?:thinking|logic|loop|system)`,
					`feedback\s+loop`,
					`self-referential`,
					`meta-(?:cognitive|level|layer)`,
				}},
				{ID: "upstream_compression", Category: "Upstream Logic", Weight: 3, Expressions: []string{
					`upstream\s+(?:thinking|logic|compression|design)`,
					`root\s+cause`,
					`first\s+principle`,
					`compress\s+(?:decisions|logic|information)`,
				}},
				{ID: "modular_architecture", Category: "System Architecture", Weight: 2, Expressions: []string{
					`modular\s+(?:design|thinking|system|architecture)`,
					`component(?:ized|s)`,
					`building\s+block`,
					`(?:de)?compose`,
				}},
				{ID: "temporal_abstraction", Category: "Temporal Abstraction", Weight: 4, Expressions: []string{
					`temporal\s+(?:abstraction|layer|compression)`,
					`time\s+(?:as|is)\s+(?:a\s+)?(?:lever|tool|dimension)`,
					`future\s+self`,
					`bypass\s+(?:building|creating)`,
				}},
				{ID: "delegation_as_survival", Category: "Delegation", Weight: 3, Expressions: []string{
					`delegation\s+(?:is|as)\s+(?:a\s+)?survival`,
					`learned\s+(?:to\s+)?(?:delegate|live)`,
					`never\s+had\s+help`,
					`do\s+things\s+on\s+my\s+own`,
				}},
				{ID: "data_exhaust_mining", Category: "Data Exhaust", Weight: 4, Expressions: []string{
					`data\s+exhaust`,
					`passive\s+(?:data\s+)?(?:capture|collection)`,
					`nothing\s+is\s+wasted`,
					`structured\s+(?:data\s+)?capture`,
				}},
			},
		},
		{
			Name: "mental_models",
			Rules: []Rule{
				{ID: "iterative_compression", Category: "Mental Models", Weight: 2, Expressions: []string{
					`compress.*then.*expand`,
					`distill.*essence`,
					`reduce.*friction`,
					`simplify.*complex`,
				}},
				{ID: "system_as_organism", Category: "Mental Models", Weight: 2, Expressions: []string{
					`system.*(?:grow|evolve|adapt)`,
					`organic.*(?:growth|development)`,
					`ecosystem`,
					`living.*system`,
				}},
				{ID: "time_as_architecture", Category: "Mental Models", Weight: 2, Expressions: []string{
					`time.*(?:dimension|layer|architecture)`,
					`temporal.*(?:abstraction|structure)`,
					`future.*building.*present`,
					`sequence.*matters`,
				}},
				{ID: "knowledge_as_graph", Category: "Mental Models", Weight: 2, Expressions: []string{
					`connect.*(?:ideas|concepts|nodes)`,
					`knowledge.*(?:graph|network|web)`,
					`pattern.*recognition`,
					`link.*(?:concepts|ideas)`,
				}},
				{ID: "execution_as_routing", Category: "Mental Models", Weight: 2, Expressions: []string{
					`route.*(?:tasks|decisions|logic)`,
					`dispatch.*(?:work|tasks)`,
					`orchestrat`,
					`parallel.*(?:process|work|think)`,
				}},
			},
		},
		{
			Name: "mannerisms",
			Rules: []Rule{
				{ID: "to_be_honest", Category: "Mannerisms", Weight: 1, Expressions: []string{`to be honest`}},
				{ID: "might_as_well", Category: "Mannerisms", Weight: 1, Expressions: []string{`might as well`}},
				{ID: "who_knows", Category: "Mannerisms", Weight: 1, Expressions: []string{`who knows`}},
				{ID: "i_dont_know", Category: "Mannerisms", Weight: 1, Expressions: []string{`i don't know`}},
				{ID: "waste_of_time", Category: "Mannerisms", Weight: 1, Expressions: []string{`waste of time`}},
				{ID: "the_way_i_see_it", Category: "Mannerisms", Weight: 1, Expressions: []string{`the way i see it`}},
				{ID: "if_you_think_about", Category: "Mannerisms", Weight: 1, Expressions: []string{`if you think about`}},
				{ID: "manual_but_not_manual", Category: "Mannerisms", Weight: 1, Expressions: []string{`manual.*but not manual`}},
				{ID: "automate_everything", Category: "Mannerisms", Weight: 1, Expressions: []string{`automat.*everything`}},
				{ID: "systems_build_themselves", Category: "Mannerisms", Weight: 1, Expressions: []string{`build.*build.*themselves`}},
			},
		},
		{
			Name: "learning_moments",
			Rules: []Rule{
				{ID: "now_i_understand", Category: "Learning", Weight: 2, Expressions: []string{`now i (?:understand|get|see)`}},
				{ID: "realized", Category: "Learning", Weight: 2, Expressions: []string{`realized`}},
				{ID: "learned_that", Category: "Learning", Weight: 2, Expressions: []string{`learned that`}},
				{ID: "figured_out", Category: "Learning", Weight: 2, Expressions: []string{`figured out`}},
				{ID: "makes_sense_now", Category: "Learning", Weight: 2, Expressions: []string{`makes sense now`}},
				{ID: "didnt_know_but_now", Category: "Learning", Weight: 2, Expressions: []string{`didn't know.*but now`}},
			},
		},
	}
}
