package store

import (
	"context"

	"github.com/studyforge/studyforge/server/service/planner"
)

const treeCacheKey = "discipline_tree"

// PlannerTree assembles the full discipline tree in planner form: every
// discipline with its topics, units and per-unit study history, in sort
// order. The result is cached until any tree mutation.
func (s *Store) PlannerTree(ctx context.Context) ([]*planner.Discipline, error) {
	if cached, ok := s.treeCache.Get(ctx, treeCacheKey); ok {
		if tree, ok := cached.([]*planner.Discipline); ok {
			return tree, nil
		}
	}

	disciplines, err := s.ListDisciplines(ctx, &FindDiscipline{})
	if err != nil {
		return nil, err
	}

	tree := make([]*planner.Discipline, 0, len(disciplines))
	for _, discipline := range disciplines {
		node := &planner.Discipline{
			UID:    discipline.UID,
			Name:   discipline.Name,
			Weight: discipline.Weight,
			Topics: []*planner.Topic{},
		}

		topics, err := s.ListTopics(ctx, &FindTopic{DisciplineID: &discipline.ID})
		if err != nil {
			return nil, err
		}
		for _, topic := range topics {
			topicNode := &planner.Topic{
				UID:   topic.UID,
				Name:  topic.Name,
				Units: []*planner.Unit{},
			}

			units, err := s.ListStudyUnits(ctx, &FindStudyUnit{TopicID: &topic.ID})
			if err != nil {
				return nil, err
			}
			for _, unit := range units {
				unitNode := &planner.Unit{
					UID:        unit.UID,
					Name:       unit.Name,
					Difficulty: int(unit.Difficulty),
					Incidence:  planner.Incidence(unit.Incidence),
					Confidence: int(unit.Confidence),
					Notes:      unit.Notes,
					History:    []planner.ReviewLog{},
				}
				if unit.LastStudied != nil {
					unitNode.LastStudied = *unit.LastStudied
				}

				logs, err := s.ListStudyLogs(ctx, &FindStudyLog{UnitID: &unit.ID})
				if err != nil {
					return nil, err
				}
				for _, log := range logs {
					unitNode.History = append(unitNode.History, planner.ReviewLog{
						Date:       log.Date,
						Confidence: int(log.Confidence),
						Notes:      log.Notes,
					})
				}
				topicNode.Units = append(topicNode.Units, unitNode)
			}
			node.Topics = append(node.Topics, topicNode)
		}
		tree = append(tree, node)
	}

	s.treeCache.Set(ctx, treeCacheKey, tree)
	return tree, nil
}

func (s *Store) invalidateTreeCache() {
	s.treeCache.Delete(context.Background(), treeCacheKey)
}
