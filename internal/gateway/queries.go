package gateway

// Repositories are ordered by stargazer count and languages by size so
// that any truncated view keeps the heaviest entries first.

const repositoriesQuery = `
query($login: String!, $cursor: String, $isFork: Boolean) {
  repositoryOwner(login: $login) {
    login
    ... on User {
      name
    }
    ... on Organization {
      name
    }
    repositories(
      first: 50,
      after: $cursor,
      isFork: $isFork,
      orderBy: { field: STARGAZERS, direction: DESC }
    ) {
      nodes {
        name
        nameWithOwner
        stargazerCount
        forkCount
        isFork
        languages(first: 100, orderBy: { field: SIZE, direction: DESC }) {
          totalSize
          pageInfo {
            hasNextPage
            endCursor
          }
          edges {
            size
            node {
              name
              color
            }
          }
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}
`

const languagesPageQuery = `
query($owner: String!, $name: String!, $cursor: String) {
  repository(owner: $owner, name: $name) {
    languages(first: 100, after: $cursor, orderBy: { field: SIZE, direction: DESC }) {
      pageInfo {
        hasNextPage
        endCursor
      }
      edges {
        size
        node {
          name
          color
        }
      }
    }
  }
}
`

const contributionsQuery = `
query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
      }
    }
  }
}
`
