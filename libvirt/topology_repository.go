package libvirt

import (
	"subuk/numango/numa"
	"subuk/numango/util"

	"github.com/rs/zerolog"
)

type TopologyRepository struct {
	pool   *ConnectionPool
	logger zerolog.Logger
}

func NewTopologyRepository(pool *ConnectionPool, logger zerolog.Logger) *TopologyRepository {
	return &TopologyRepository{pool: pool, logger: logger}
}

func (repo *TopologyRepository) Get() (numa.Topology, error) {
	conn, err := repo.pool.Acquire()
	if err != nil {
		return numa.Topology{}, util.NewError(err, "cannot acquire libvirt connection")
	}
	defer repo.pool.Release(conn)

	capsXml, err := conn.GetCapabilities()
	if err != nil {
		return numa.Topology{}, util.NewError(err, "cannot fetch host capabilities")
	}
	topology, err := ParseCapabilities(capsXml)
	if err != nil {
		return numa.Topology{}, err
	}
	repo.fillFreeMemory(topology, conn)
	return topology, nil
}

type cellFreeMemoryReader interface {
	GetCellsFreeMemory(startCell int, maxCells int) ([]uint64, error)
}

// Cell ids may be sparse (0, 8 on POWER), so each cell is queried by its
// own id.
func (repo *TopologyRepository) fillFreeMemory(topology numa.Topology, reader cellFreeMemoryReader) {
	for _, id := range topology.MemoryNodes() {
		freeMemory, err := reader.GetCellsFreeMemory(id, 1)
		if err != nil || len(freeMemory) != 1 {
			repo.logger.Warn().Err(err).Int("cell", id).Msg("cannot get free memory for cell")
			continue
		}
		mem := topology.MemoryPerNode[id]
		mem.FreeMB = freeMemory[0] / 1024 / 1024
		topology.MemoryPerNode[id] = mem
	}
}
